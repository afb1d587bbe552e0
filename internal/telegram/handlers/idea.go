package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/render"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

// minIdeaLength mirrors the API-side minimum for an idea description.
const minIdeaLength = 3

// IdeaHandler receives the idea text, fetches the clarification questions
// and starts the question walk.
type IdeaHandler struct {
	*BaseHandler
}

// NewIdeaHandler creates the handler for the AWAITING_IDEA stage
func NewIdeaHandler(
	snd *sender.Sender,
	states *state.Manager,
	usecase PromptUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *IdeaHandler {
	return &IdeaHandler{
		BaseHandler: &BaseHandler{
			stage:    state.StageAwaitingIdea,
			sender:   snd,
			states:   states,
			usecase:  usecase,
			keyboard: kb,
			logger:   logger,
		},
	}
}

// Handle implements Handler
func (h *IdeaHandler) Handle(ctx context.Context, msg *Message) error {
	conv, err := h.states.Get(ctx, msg.UserID)
	if err != nil {
		return err
	}

	idea := strings.TrimSpace(msg.Text)
	if utf8.RuneCountInString(idea) < minIdeaLength {
		return h.sender.Send(ctx, msg.ChatID, render.MsgIdeaTooShort, nil)
	}

	if err := h.sender.Send(ctx, msg.ChatID, render.MsgPreparingQuestions, nil); err != nil {
		h.logger.Warn("failed to send preparing notice",
			zap.Error(err),
			zap.Int64("chat_id", msg.ChatID),
		)
	}

	typing := h.sender.StartTyping(ctx, msg.ChatID)
	result := h.usecase.GenerateQuestions(ctx, &entity.Idea{
		Category:    conv.Category,
		Description: idea,
	})
	typing.Stop()

	conv.Idea = idea
	conv.Questions = result.Questions
	conv.Answers = make(map[string]any)
	conv.Index = 0
	conv.Stage = state.StageAnswering
	if err := h.states.Save(ctx, conv); err != nil {
		return err
	}

	return h.askCurrentQuestion(ctx, conv, msg.ChatID)
}
