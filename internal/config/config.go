package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var (
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY не задан: укажите ключ в .env, окружении или флагом -openai-api-key")
	ErrEmptyDocument = errors.New("текст для набора пуст: укажите TEXT_PATH или TEXT")
)

// placeholderText — заглушка из шаблона, считается пустым документом
const placeholderText = "Your text here"

type Config struct {
	DebugMode bool `env:"DEBUG_MODE"` //Режим дебага
	LogJSON   bool `env:"LOG_JSON"`   // Логи в JSON (production encoder)

	// OpenAI (Rethink Advisor)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"` // Ключ API, обязателен кроме DRY_RUN
	OpenAIModel  string `env:"OPENAI_MODEL"`   // Модель для «переосмысления» начала предложения

	// Документ
	TextPath string `env:"TEXT_PATH"` // Файл с текстом; "-" — читать из stdin
	Text     string `env:"TEXT"`      // Текст напрямую (если TEXT_PATH пуст)

	Timing Timing

	// Запуск
	StartDelay  time.Duration `env:"START_DELAY"`  // Время на фокусировку окна перед набором
	RepassDelay time.Duration `env:"REPASS_DELAY"` // Пауза перед второй фазой (вычитка)
	Seed        uint64        `env:"SEED"`         // 0 — случайное зерно
	DryRun      bool          `env:"DRY_RUN"`      // Набор во встроенный редактор без реальных задержек
	FailSafe    bool          `env:"FAILSAFE"`     // Остановка при уводе мыши в угол или смене фокуса
	Keymap      string        `env:"KEYMAP"`       // pc|mac
	// Выделение слова останавливается в конце строки (Word, LibreOffice)
	SelectStopsAtEOL bool `env:"SELECT_STOPS_AT_EOL"`

	NotificationSoundPath string `env:"NOTIFICATION_SOUND_PATH"` // Звук при смене фаз; пусто — выключено
}

// Timing параметры скорости и вероятностей «человеческих» отклонений.
type Timing struct {
	WritingTimeMinutes float64 `env:"WRITING_TIME_MINUTES"` // Целевое время набора всего текста
	MaxSmallBreakSecs  float64 `env:"MAX_SMALL_BREAK_SECS"` // Верхняя граница паузы «на подумать» внутри абзаца
	MaxBigBreakSecs    float64 `env:"MAX_BIG_BREAK_SECS"`   // Верхняя граница большого перерыва между абзацами

	BigBreakChance      float64 `env:"BIG_BREAK_CHANCE"`
	SmallBreakChance    float64 `env:"SMALL_BREAK_CHANCE"`
	GhostSentenceChance float64 `env:"GHOST_SENTENCE_CHANCE"`
	PlannedErrorRate    float64 `env:"PLANNED_ERROR_RATE"`
	PermanentTypoRate   float64 `env:"PERMANENT_TYPO_RATE"`
	CorrectedTypoRate   float64 `env:"CORRECTED_TYPO_RATE"`
	ShiftMissRate       float64 `env:"SHIFT_MISS_RATE"`
	AccentDropRate      float64 `env:"ACCENT_DROP_RATE"`
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		OpenAIModel: "gpt-4o-mini",
		Timing:      DefaultTiming(),
		StartDelay:  5 * time.Second,
		RepassDelay: 10 * time.Second,
		FailSafe:    true,
		Keymap:      "pc",
	}
}

// DefaultTiming — значения скорости и вероятностей по умолчанию.
func DefaultTiming() Timing {
	return Timing{
		WritingTimeMinutes:  45,
		MaxSmallBreakSecs:   30,
		MaxBigBreakSecs:     120,
		BigBreakChance:      0.7,
		SmallBreakChance:    0.15,
		GhostSentenceChance: 0.15,
		PlannedErrorRate:    0.05,
		PermanentTypoRate:   0.01,
		CorrectedTypoRate:   0.02,
		ShiftMissRate:       0.03,
		AccentDropRate:      0.04,
	}
}

// NewConfig загружает конфигурацию приложения: дефолты -> .env -> окружение -> флаги.
func NewConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("typist", flag.ContinueOnError)
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "писать логи в JSON")
	fs.StringVar(&cfg.OpenAIAPIKey, "openai-api-key", cfg.OpenAIAPIKey, "ключ OpenAI (перекрывает ENV)")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", cfg.OpenAIModel, "модель OpenAI для ghost rethink")
	fs.StringVar(&cfg.TextPath, "text-path", cfg.TextPath, "путь к файлу с текстом, '-' для stdin")
	fs.StringVar(&cfg.Text, "text", cfg.Text, "текст для набора (если не задан text-path)")
	// Скорость и паузы
	fs.Float64Var(&cfg.Timing.WritingTimeMinutes, "writing-time-minutes", cfg.Timing.WritingTimeMinutes, "целевое время набора, в минутах")
	fs.Float64Var(&cfg.Timing.MaxSmallBreakSecs, "max-small-break-secs", cfg.Timing.MaxSmallBreakSecs, "максимум паузы внутри абзаца, в секундах")
	fs.Float64Var(&cfg.Timing.MaxBigBreakSecs, "max-big-break-secs", cfg.Timing.MaxBigBreakSecs, "максимум перерыва между абзацами, в секундах")
	fs.Float64Var(&cfg.Timing.BigBreakChance, "big-break-chance", cfg.Timing.BigBreakChance, "вероятность большого перерыва перед абзацем")
	fs.Float64Var(&cfg.Timing.SmallBreakChance, "small-break-chance", cfg.Timing.SmallBreakChance, "вероятность паузы перед предложением")
	// Вероятности отклонений
	fs.Float64Var(&cfg.Timing.GhostSentenceChance, "ghost-sentence-chance", cfg.Timing.GhostSentenceChance, "вероятность ложного начала предложения")
	fs.Float64Var(&cfg.Timing.PlannedErrorRate, "planned-error-rate", cfg.Timing.PlannedErrorRate, "доля слов с ошибкой для второй фазы")
	fs.Float64Var(&cfg.Timing.PermanentTypoRate, "permanent-typo-rate", cfg.Timing.PermanentTypoRate, "вероятность неисправленной опечатки")
	fs.Float64Var(&cfg.Timing.CorrectedTypoRate, "corrected-typo-rate", cfg.Timing.CorrectedTypoRate, "вероятность сразу исправленной опечатки")
	fs.Float64Var(&cfg.Timing.ShiftMissRate, "shift-miss-rate", cfg.Timing.ShiftMissRate, "вероятность промаха мимо Shift на заглавной")
	fs.Float64Var(&cfg.Timing.AccentDropRate, "accent-drop-rate", cfg.Timing.AccentDropRate, "вероятность набрать букву без диакритики")
	// Запуск
	fs.DurationVar(&cfg.StartDelay, "start-delay", cfg.StartDelay, "время на фокусировку окна, напр. 5s")
	fs.DurationVar(&cfg.RepassDelay, "repass-delay", cfg.RepassDelay, "пауза перед вычиткой, напр. 10s")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "зерно генератора случайных чисел (0 — случайное)")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "набрать во встроенный редактор и вывести результат")
	fs.BoolVar(&cfg.FailSafe, "failsafe", cfg.FailSafe, "остановка при уводе мыши в угол экрана или смене активного окна")
	fs.StringVar(&cfg.Keymap, "keymap", cfg.Keymap, "раскладка сочетаний: pc|mac")
	fs.BoolVar(&cfg.SelectStopsAtEOL, "select-stops-at-eol", cfg.SelectStopsAtEOL, "выделение слова не переходит через разрыв абзаца")
	fs.StringVar(&cfg.NotificationSoundPath, "notification-sound-path", cfg.NotificationSoundPath, "звук смены фаз (mp3 или wav)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Keymap = strings.ToLower(strings.TrimSpace(cfg.Keymap))
	return cfg, nil
}

// LoadDocument возвращает текст документа: из файла, stdin или поля Text.
func (c *Config) LoadDocument(stdin io.Reader) (string, error) {
	switch path := strings.TrimSpace(c.TextPath); path {
	case "":
		return c.Text, nil
	case "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(b), nil
	}
}

// Validate проверяет конфигурацию и документ до начала набора.
func (c *Config) Validate(document string) error {
	if !c.DryRun && strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(document) == "" || strings.Contains(document, placeholderText) {
		return ErrEmptyDocument
	}
	if c.Keymap != "pc" && c.Keymap != "mac" {
		return fmt.Errorf("неизвестная раскладка %q: ожидается pc|mac", c.Keymap)
	}
	if c.StartDelay < 0 || c.RepassDelay < 0 {
		return errors.New("задержки запуска не могут быть отрицательными")
	}
	return c.Timing.Validate()
}

// Validate проверяет диапазоны вероятностей и длительностей.
func (t Timing) Validate() error {
	if t.WritingTimeMinutes <= 0 {
		return fmt.Errorf("WRITING_TIME_MINUTES должен быть > 0, получено %v", t.WritingTimeMinutes)
	}
	if t.MaxSmallBreakSecs < 5 {
		return fmt.Errorf("MAX_SMALL_BREAK_SECS должен быть >= 5, получено %v", t.MaxSmallBreakSecs)
	}
	if t.MaxBigBreakSecs < 30 {
		return fmt.Errorf("MAX_BIG_BREAK_SECS должен быть >= 30, получено %v", t.MaxBigBreakSecs)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"BIG_BREAK_CHANCE", t.BigBreakChance},
		{"SMALL_BREAK_CHANCE", t.SmallBreakChance},
		{"GHOST_SENTENCE_CHANCE", t.GhostSentenceChance},
		{"PLANNED_ERROR_RATE", t.PlannedErrorRate},
		{"PERMANENT_TYPO_RATE", t.PermanentTypoRate},
		{"CORRECTED_TYPO_RATE", t.CorrectedTypoRate},
		{"SHIFT_MISS_RATE", t.ShiftMissRate},
		{"ACCENT_DROP_RATE", t.AccentDropRate},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("%s должен быть в диапазоне [0, 1], получено %v", r.name, r.v)
		}
	}
	// Ветки отклонений делят один розыгрыш на символ
	if sum := t.ShiftMissRate + t.CorrectedTypoRate + t.PermanentTypoRate + t.AccentDropRate; sum > 1 {
		return fmt.Errorf("сумма вероятностей отклонений символа превышает 1: %v", sum)
	}
	return nil
}
