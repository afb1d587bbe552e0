package prompt

import (
	"context"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// PromptUsecase is the prompt-building business logic consumed by the
// HTTP handlers. Operations degrade to deterministic fallbacks instead
// of failing, so none of them return an error.
type PromptUsecase interface {
	GenerateQuestions(ctx context.Context, idea *entity.Idea) *entity.GenerateQuestionsResult
	GeneratePrompt(ctx context.Context, req *entity.PromptRequest) *entity.GeneratePromptResult
	SuggestAnswer(ctx context.Context, req *entity.SuggestAnswerRequest) *entity.SuggestAnswerResult
}
