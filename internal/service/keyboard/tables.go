// Package keyboard — таблицы соседних клавиш QWERTY и диакритики, генератор
// опечаток и отправка символов в коллаборатор ввода.
package keyboard

// neighbors — физически соседние клавиши для правдоподобных опечаток.
var neighbors = map[rune]string{
	'a': "qwsz",
	'b': "vghn",
	'c': "xdfv",
	'd': "serfcx",
	'e': "wsdrf",
	'f': "drtgvc",
	'g': "ftyhbv",
	'h': "gyujnb",
	'i': "ujko",
	'j': "hukmln",
	'k': "ijlm",
	'l': "okp",
	'm': "njk",
	'n': "bhjm",
	'o': "iklp",
	'p': "ol",
	'q': "aw",
	'r': "edftg",
	's': "awedzx",
	't': "rfghy",
	'u': "yhjkio",
	'v': "cfgbn",
	'w': "qase",
	'x': "zsdc",
	'y': "tghju",
	'z': "asx",
}

// Vowels — запасной набор для символов без соседей в таблице.
const Vowels = "aeiou"

// accents сопоставляет букву с диакритикой её «голой» версии.
var accents = map[rune]rune{
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'à': 'a', 'â': 'a',
	'î': 'i', 'ï': 'i',
	'ô': 'o',
	'û': 'u', 'ù': 'u',
	'ç': 'c',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'À': 'A', 'Â': 'A',
	'Î': 'I', 'Ï': 'I',
	'Ô': 'O',
	'Û': 'U', 'Ù': 'U',
	'Ç': 'C',
}

// StripAccent возвращает букву без диакритики и true, если она есть в таблице.
func StripAccent(r rune) (rune, bool) {
	plain, ok := accents[r]
	return plain, ok
}
