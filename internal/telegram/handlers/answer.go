package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/render"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

// AnswerHandler records typed answers to the current question.
type AnswerHandler struct {
	*BaseHandler
}

// NewAnswerHandler creates the handler for the ANSWERING stage
func NewAnswerHandler(
	snd *sender.Sender,
	states *state.Manager,
	usecase PromptUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *AnswerHandler {
	return &AnswerHandler{
		BaseHandler: &BaseHandler{
			stage:    state.StageAnswering,
			sender:   snd,
			states:   states,
			usecase:  usecase,
			keyboard: kb,
			logger:   logger,
		},
	}
}

// Handle implements Handler
func (h *AnswerHandler) Handle(ctx context.Context, msg *Message) error {
	conv, err := h.states.Get(ctx, msg.UserID)
	if err != nil {
		return err
	}

	q, ok := conv.CurrentQuestion()
	if !ok {
		// Questions ran out while a reply was in flight. Generate with
		// whatever is collected.
		return h.finishConversation(ctx, conv, msg.ChatID)
	}

	value := parseTypedAnswer(q, msg.Text)
	conv.Answers[q.ID] = value

	h.logger.Debug("typed answer recorded",
		zap.Int64("user_id", msg.UserID),
		zap.String("question_id", q.ID),
	)

	return h.advance(ctx, conv, msg.ChatID, render.RenderAnswerAck(value))
}
