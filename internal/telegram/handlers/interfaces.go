package handlers

import (
	"context"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
)

// PromptUsecase defines the prompt-building operations the bot drives.
// The implementation degrades to fallbacks internally, so no method
// returns an error.
type PromptUsecase interface {
	GenerateQuestions(ctx context.Context, idea *entity.Idea) *entity.GenerateQuestionsResult
	GeneratePrompt(ctx context.Context, req *entity.PromptRequest) *entity.GeneratePromptResult
	SuggestAnswer(ctx context.Context, req *entity.SuggestAnswerRequest) *entity.SuggestAnswerResult
}
