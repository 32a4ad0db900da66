package keyboard

import (
	"math/rand/v2"
	"unicode"
)

// Typo возвращает случайного соседа символа по QWERTY (регистр не важен),
// а для символов вне таблицы — случайную гласную.
func Typo(rng *rand.Rand, r rune) rune {
	set, ok := neighbors[unicode.ToLower(r)]
	if !ok {
		set = Vowels
	}
	// таблицы содержат только ASCII, индексируем байты
	return rune(set[rng.IntN(len(set))])
}
