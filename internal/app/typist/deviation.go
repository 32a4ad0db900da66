package typist

import (
	"HumanTyper/internal/config"
	"HumanTyper/internal/service/keyboard"
	"unicode"
)

// Deviation — вид «человеческого» отклонения при наборе символа.
type Deviation int

const (
	Clean Deviation = iota
	ShiftMiss
	CorrectedTypo
	PermanentTypo
	AccentDrop
)

func (d Deviation) String() string {
	switch d {
	case ShiftMiss:
		return "shift-miss"
	case CorrectedTypo:
		return "corrected-typo"
	case PermanentTypo:
		return "permanent-typo"
	case AccentDrop:
		return "accent-drop"
	default:
		return "clean"
	}
}

type rule struct {
	kind     Deviation
	rate     float64
	eligible func(r rune) bool
}

// DeviationTable — кумулятивные пороги по приоритету. Каждое применимое к
// символу правило занимает свою полосу [acc, acc+rate) одного розыгрыша,
// неприменимые полос не занимают.
type DeviationTable struct {
	rules []rule
}

func NewDeviationTable(t config.Timing) DeviationTable {
	return DeviationTable{rules: []rule{
		{kind: ShiftMiss, rate: t.ShiftMissRate, eligible: isUpper},
		{kind: CorrectedTypo, rate: t.CorrectedTypoRate, eligible: unicode.IsLetter},
		{kind: PermanentTypo, rate: t.PermanentTypoRate, eligible: unicode.IsLetter},
		{kind: AccentDrop, rate: t.AccentDropRate, eligible: hasAccent},
	}}
}

// Decide выбирает отклонение для символа по розыгрышу draw из [0, 1).
func (dt DeviationTable) Decide(draw float64, r rune) Deviation {
	acc := 0.0
	for _, rl := range dt.rules {
		if rl.rate <= 0 || !rl.eligible(r) {
			continue
		}
		acc += rl.rate
		if draw < acc {
			return rl.kind
		}
	}
	return Clean
}

func isUpper(r rune) bool {
	return unicode.IsUpper(r) && unicode.ToLower(r) != r
}

func hasAccent(r rune) bool {
	_, ok := keyboard.StripAccent(r)
	return ok
}
