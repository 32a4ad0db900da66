package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
	"go.uber.org/zap"
)

const (
	rethinkInstructions = "You are a student. Provide a realistic 5-8 word alternative start for this sentence. Return ONLY the text."
	// минимум, который принимает Responses API
	rethinkMaxTokens = 16
)

// TextClient реализует Advisor через OpenAI Responses API.
type TextClient struct {
	client *openai.Client
	model  openai.ChatModel
	logger *zap.SugaredLogger
}

func NewTextClient(client *openai.Client, model string, logger *zap.SugaredLogger) *TextClient {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}
	return &TextClient{
		client: client,
		model:  openai.ChatModel(model),
		logger: logger,
	}
}

func (c *TextClient) SuggestAlternativeStart(ctx context.Context, sentence string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	// Системные инструкции — первой репликой, как в диалоговом клиенте
	sys := responses.ResponseInputMessageContentListParam{
		{OfInputText: &responses.ResponseInputTextParam{Text: rethinkInstructions}},
	}
	user := responses.ResponseInputMessageContentListParam{
		{OfInputText: &responses.ResponseInputTextParam{Text: "Sentence: " + sentence}},
	}

	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(sys, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(user, responses.EasyInputMessageRoleUser),
			},
		},
		MaxOutputTokens: openai.Int(rethinkMaxTokens),
	})
	if err != nil {
		c.logger.Warnw("Rethink request failed", "error", err)
		return "", false
	}

	return CleanSuggestion(resp.OutputText())
}

// CleanSuggestion убирает кавычки и пробелы; пустой ответ — нет подсказки.
func CleanSuggestion(raw string) (string, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if s == "" {
		return "", false
	}
	return s, true
}
