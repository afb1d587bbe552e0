package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/render"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

// StageCallback is the pseudo-stage all callback queries route to,
// regardless of where the conversation stands.
const StageCallback state.Stage = "CALLBACK"

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for stage-specific handlers
type Handler interface {
	// Handle processes a message for this stage
	Handle(ctx context.Context, msg *Message) error

	// Stage returns the conversation stage this handler manages
	Stage() state.Stage
}

// validStages defines all stages a handler may register for
var validStages = map[state.Stage]bool{
	StageCallback:          true,
	state.StageAwaitingIdea: true,
	state.StageAnswering:    true,
}

// IsValidStage checks if a stage is valid for handler registration
func IsValidStage(stage state.Stage) bool {
	return validStages[stage]
}

// BaseHandler carries the dependencies every handler needs and the flow
// steps they share: asking the next question and generating the final
// prompt.
type BaseHandler struct {
	stage    state.Stage
	sender   *sender.Sender
	states   *state.Manager
	usecase  PromptUsecase
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

// Stage implements Handler
func (h *BaseHandler) Stage() state.Stage {
	return h.stage
}

// askCurrentQuestion sends the question the conversation is positioned at,
// or hands over to prompt generation once all questions are done.
func (h *BaseHandler) askCurrentQuestion(ctx context.Context, conv *state.Conversation, chatID int64) error {
	q, ok := conv.CurrentQuestion()
	if !ok {
		return h.finishConversation(ctx, conv, chatID)
	}

	text := render.RenderQuestion(q, conv.Index+1, len(conv.Questions))
	return h.sender.Send(ctx, chatID, text, h.keyboard.QuestionKeyboard(q))
}

// advance acknowledges the latest answer, moves to the next question and
// asks it.
func (h *BaseHandler) advance(ctx context.Context, conv *state.Conversation, chatID int64, ack string) error {
	if ack != "" {
		if err := h.sender.Send(ctx, chatID, ack, nil); err != nil {
			h.logger.Warn("failed to send answer ack",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
			)
		}
	}

	conv.Index++
	if err := h.states.Save(ctx, conv); err != nil {
		return err
	}

	return h.askCurrentQuestion(ctx, conv, chatID)
}

// finishConversation generates the prompt from everything collected so far
// and presents it with the download options.
func (h *BaseHandler) finishConversation(ctx context.Context, conv *state.Conversation, chatID int64) error {
	if err := h.sender.Send(ctx, chatID, render.MsgGenerating, nil); err != nil {
		h.logger.Warn("failed to send generating notice",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}

	typing := h.sender.StartTyping(ctx, chatID)
	defer typing.Stop()

	result := h.usecase.GeneratePrompt(ctx, &entity.PromptRequest{
		Category: conv.Category,
		Idea:     conv.Idea,
		Answers:  conv.Answers,
	})

	conv.Stage = state.StageDone
	conv.Prompt = result.Prompt
	if err := h.states.Save(ctx, conv); err != nil {
		return err
	}

	if err := h.sender.SendLong(ctx, chatID, result.Prompt, nil); err != nil {
		return err
	}

	return h.sender.Send(ctx, chatID, render.MsgPromptReady, h.keyboard.ResultKeyboard())
}
