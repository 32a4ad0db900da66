package typist

const (
	MinMomentum = 1.0
	MaxMomentum = 4.5

	momentumStep  = 0.1
	momentumDecay = 0.5
)

// Momentum — «разгон» печати: растёт с каждым чистым нажатием и делит базовую
// задержку. Всегда в [MinMomentum, MaxMomentum]; нулевое значение равно MinMomentum.
type Momentum struct {
	v float64
}

func (m *Momentum) Value() float64 { return max(m.v, MinMomentum) }

// Bump — чистое нажатие.
func (m *Momentum) Bump() { m.v = min(MaxMomentum, m.Value()+momentumStep) }

// Decay — пробел между словами.
func (m *Momentum) Decay() { m.v = max(MinMomentum, m.Value()-momentumDecay) }

// Reset — конец предложения, исправление или новый абзац.
func (m *Momentum) Reset() { m.v = MinMomentum }
