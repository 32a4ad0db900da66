package ai

import "context"

// Advisor предлагает альтернативное начало предложения для «ложного старта».
// Все реализации обязаны быть мягкими: любая ошибка — это просто ok=false.
type Advisor interface {
	SuggestAlternativeStart(ctx context.Context, sentence string) (text string, ok bool)
}
