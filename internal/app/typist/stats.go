package typist

// Stats — сводка первой фазы.
type Stats struct {
	Characters     int
	Words          int
	ShiftMisses    int
	CorrectedTypos int
	PermanentTypos int
	AccentDrops    int
	PlannedErrors  int
	GhostRethinks  int
	BigBreaks      int
	SmallBreaks    int
}

func (s *Stats) count(d Deviation) {
	s.Characters++
	switch d {
	case ShiftMiss:
		s.ShiftMisses++
	case CorrectedTypo:
		s.CorrectedTypos++
	case PermanentTypo:
		s.PermanentTypos++
	case AccentDrop:
		s.AccentDrops++
	}
}
