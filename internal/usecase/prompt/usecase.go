package prompt

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/logger"
)

// Usecase orchestrates the three prompt-building flows. Every flow makes at
// most one upstream call; at the first sign of trouble (no connector, call
// failure, unusable payload) it serves the deterministic fallback instead.
// Callers therefore never see an error from these methods.
type Usecase struct {
	model   ModelConnector
	devMode bool
}

// NewUsecase builds the orchestrator. A nil model means the upstream is not
// configured and every flow answers from its fallback.
func NewUsecase(model ModelConnector, devMode bool) *Usecase {
	return &Usecase{
		model:   model,
		devMode: devMode,
	}
}

// GenerateQuestions asks the model for typed clarification questions about
// the idea. Unavailable model, unparseable output or an invalid question set
// all yield the canned six-question fallback.
func (uc *Usecase) GenerateQuestions(ctx context.Context, idea *entity.Idea) *entity.GenerateQuestionsResult {
	ctx = logger.WithAction(ctx, "generate_questions")

	if uc.model == nil {
		ctxzap.Info(ctx, "model not configured, serving fallback questions")
		return &entity.GenerateQuestionsResult{Questions: fallbackQuestions()}
	}

	raw, err := uc.model.Complete(ctx, questionInstructions(idea.Category), questionContent(idea))
	if err != nil {
		ctxzap.Warn(ctx, "model call failed, serving fallback questions", zap.Error(err))
		return &entity.GenerateQuestionsResult{Questions: fallbackQuestions()}
	}

	payload, err := extractObject(raw)
	if err != nil {
		ctxzap.Warn(ctx, "no usable JSON in completion, serving fallback questions", zap.Error(err))
		return &entity.GenerateQuestionsResult{Questions: fallbackQuestions()}
	}

	questions, err := questionSetFromPayload(payload)
	if err != nil {
		ctxzap.Warn(ctx, "question set rejected, serving fallback questions", zap.Error(err))
		return &entity.GenerateQuestionsResult{Questions: fallbackQuestions()}
	}

	ctxzap.Info(ctx, "questions generated", zap.Int("count", len(questions)))
	return &entity.GenerateQuestionsResult{Questions: questions}
}

// GeneratePrompt synthesizes the final prompt from the idea and answers. When
// the model is out of reach the result is the placeholder prompt in dev mode
// or the service-unavailable notice in production.
func (uc *Usecase) GeneratePrompt(ctx context.Context, req *entity.PromptRequest) *entity.GeneratePromptResult {
	ctx = logger.WithAction(ctx, "generate_prompt")

	if uc.model == nil {
		ctxzap.Info(ctx, "model not configured, serving fallback prompt")
		return &entity.GeneratePromptResult{Prompt: fallbackPromptText(req, uc.devMode)}
	}

	raw, err := uc.model.Complete(ctx, promptInstructions(req.Category), promptContent(req))
	if err != nil {
		ctxzap.Warn(ctx, "model call failed, serving fallback prompt", zap.Error(err))
		return &entity.GeneratePromptResult{Prompt: fallbackPromptText(req, uc.devMode)}
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		ctxzap.Warn(ctx, "empty completion, serving fallback prompt", zap.Error(entity.ErrEmptyCompletion))
		return &entity.GeneratePromptResult{Prompt: fallbackPromptText(req, uc.devMode)}
	}

	ctxzap.Info(ctx, "prompt generated", zap.Int("chars", len(text)))
	return &entity.GeneratePromptResult{Prompt: text}
}

// SuggestAnswer asks the model for one plausible answer to a single question
// and coerces whatever comes back into the question's declared shape. Any
// failure on the way yields the per-type default answer.
func (uc *Usecase) SuggestAnswer(ctx context.Context, req *entity.SuggestAnswerRequest) *entity.SuggestAnswerResult {
	ctx = logger.AddFields(ctx,
		zap.String("action", "suggest_answer"),
		zap.String("question_id", req.Question.ID),
	)

	q := &req.Question
	suggest := func(v entity.AnswerValue) *entity.SuggestAnswerResult {
		return &entity.SuggestAnswerResult{ID: q.ID, Type: q.Type, Value: v}
	}

	if uc.model == nil {
		ctxzap.Info(ctx, "model not configured, serving default answer")
		return suggest(defaultAnswerFor(q))
	}

	raw, err := uc.model.Complete(ctx, suggestInstructions(req), suggestContent(req))
	if err != nil {
		ctxzap.Warn(ctx, "model call failed, serving default answer", zap.Error(err))
		return suggest(defaultAnswerFor(q))
	}

	payload, err := extractObject(raw)
	if err != nil {
		ctxzap.Warn(ctx, "no usable JSON in completion, serving default answer", zap.Error(err))
		return suggest(defaultAnswerFor(q))
	}

	// A missing value key coerces like an absent value: straight to defaults.
	value := coerceAnswer(q, payload["value"])
	ctxzap.Info(ctx, "answer suggested")
	return suggest(value)
}
