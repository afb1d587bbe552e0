package handlers

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/formatter"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/keyboard"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/render"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/sender"
	"github.com/promptcraft/promptcraft-backend/internal/telegram/state"
)

// CallbackHandler routes every inline button tap: category picks, choice
// answers, answer suggestions, skips, downloads and restarts.
type CallbackHandler struct {
	*BaseHandler
	formats *formatter.Factory
}

// NewCallbackHandler creates the handler for callback queries
func NewCallbackHandler(
	snd *sender.Sender,
	states *state.Manager,
	usecase PromptUsecase,
	kb *keyboard.Builder,
	formats *formatter.Factory,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: &BaseHandler{
			stage:    StageCallback,
			sender:   snd,
			states:   states,
			usecase:  usecase,
			keyboard: kb,
			logger:   logger,
		},
		formats: formats,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	cb, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return err
	}

	switch cb.Action {
	case keyboard.ActionControl:
		return h.handleControl(ctx, msg, cb.Value)
	case keyboard.ActionCategory:
		return h.handleCategory(ctx, msg, cb.Value)
	case keyboard.ActionAnswer:
		return h.handleChoiceAnswer(ctx, msg, cb.Value)
	case keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, cb.Value)
	case keyboard.ActionConfirm:
		return h.handleConfirm(ctx, msg, cb.Value)
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}
}

func (h *CallbackHandler) handleControl(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.ControlStart, keyboard.ControlRestart:
		return h.startConversation(ctx, msg)
	case keyboard.ControlSuggest:
		return h.handleSuggest(ctx, msg)
	case keyboard.ControlSkip:
		return h.handleSkip(ctx, msg)
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}
}

// startConversation wipes whatever was in progress and begins at category
// selection.
func (h *CallbackHandler) startConversation(ctx context.Context, msg *Message) error {
	conv, err := h.states.Begin(ctx, msg.UserID)
	if err != nil {
		return err
	}

	h.logger.Info("conversation started",
		zap.Int64("user_id", msg.UserID),
		zap.String("conversation_id", conv.ConversationID),
	)

	return h.sender.Send(ctx, msg.ChatID, render.MsgChooseCategory, h.keyboard.CategoryKeyboard())
}

func (h *CallbackHandler) handleCategory(ctx context.Context, msg *Message, value string) error {
	conv, err := h.states.Get(ctx, msg.UserID)
	if errors.Is(err, state.ErrNotFound) {
		// Stale button from an expired conversation: begin a fresh one
		// with the picked category.
		if conv, err = h.states.Begin(ctx, msg.UserID); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	conv.Category = entity.IdeaCategory(value).Normalize()
	conv.Stage = state.StageAwaitingIdea
	if err := h.states.Save(ctx, conv); err != nil {
		return err
	}

	return h.sender.Send(ctx, msg.ChatID, render.MsgAskIdea, nil)
}

// handleChoiceAnswer records a button answer: a choice index for single
// selects, yes or no for booleans.
func (h *CallbackHandler) handleChoiceAnswer(ctx context.Context, msg *Message, value string) error {
	conv, q, err := h.currentQuestion(ctx, msg)
	if err != nil || q == nil {
		return err
	}

	var answer any
	switch {
	case q.Type == entity.QuestionTypeBoolean && value == "yes":
		answer = true
	case q.Type == entity.QuestionTypeBoolean && value == "no":
		answer = false
	case q.Type == entity.QuestionTypeSingleSelect:
		idx, convErr := strconv.Atoi(value)
		if convErr != nil || idx < 0 || idx >= len(q.Choices) {
			h.logger.Warn("choice index out of range",
				zap.String("value", value),
				zap.String("question_id", q.ID),
			)
			return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
		}
		answer = q.Choices[idx]
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}

	conv.Answers[q.ID] = answer
	return h.advance(ctx, conv, msg.ChatID, render.RenderAnswerAck(answer))
}

// handleSuggest asks the model for an answer to the current question and
// records it.
func (h *CallbackHandler) handleSuggest(ctx context.Context, msg *Message) error {
	conv, q, err := h.currentQuestion(ctx, msg)
	if err != nil || q == nil {
		return err
	}

	typing := h.sender.StartTyping(ctx, msg.ChatID)
	result := h.usecase.SuggestAnswer(ctx, &entity.SuggestAnswerRequest{
		Category:       conv.Category,
		Idea:           conv.Idea,
		Question:       *q,
		CurrentAnswers: conv.Answers,
	})
	typing.Stop()

	answer := result.Value.Raw()
	conv.Answers[q.ID] = answer

	return h.advance(ctx, conv, msg.ChatID, render.RenderSuggested(answer))
}

// handleSkip leaves the current question unanswered and moves on.
func (h *CallbackHandler) handleSkip(ctx context.Context, msg *Message) error {
	conv, q, err := h.currentQuestion(ctx, msg)
	if err != nil || q == nil {
		return err
	}

	delete(conv.Answers, q.ID)
	return h.advance(ctx, conv, msg.ChatID, "⏭ Skipped")
}

// handleDownload renders the generated prompt into the requested document
// format and sends it as a file.
func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, value string) error {
	conv, err := h.states.Get(ctx, msg.UserID)
	if errors.Is(err, state.ErrNotFound) {
		return h.sender.Send(ctx, msg.ChatID, render.MsgNoConversation, nil)
	} else if err != nil {
		return err
	}

	if conv.Prompt == "" {
		return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}

	f, err := h.formats.Create(entity.ExportFormat(value))
	if err != nil {
		return err
	}

	data, err := f.Format(formatter.DefaultTitle, conv.Prompt)
	if err != nil {
		return err
	}

	h.logger.Info("prompt document sent",
		zap.Int64("user_id", msg.UserID),
		zap.String("format", value),
		zap.Int("bytes", len(data)),
	)

	return h.sender.SendDocument(ctx, msg.ChatID, "prompt"+f.FileExtension(), data)
}

func (h *CallbackHandler) handleConfirm(ctx context.Context, msg *Message, value string) error {
	switch value {
	case "cancel":
		if err := h.states.Delete(ctx, msg.UserID); err != nil {
			return err
		}
		return h.sender.Send(ctx, msg.ChatID, render.MsgConversationDiscarded, nil)
	case "continue":
		conv, err := h.states.Get(ctx, msg.UserID)
		if errors.Is(err, state.ErrNotFound) {
			return h.sender.Send(ctx, msg.ChatID, render.MsgNoConversation, nil)
		} else if err != nil {
			return err
		}

		conv.PendingCancel = false
		if err := h.states.Save(ctx, conv); err != nil {
			return err
		}

		if conv.Stage == state.StageAnswering {
			return h.askCurrentQuestion(ctx, conv, msg.ChatID)
		}
		return h.sender.Send(ctx, msg.ChatID, "👍 Carrying on.", nil)
	default:
		return h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}
}

// currentQuestion loads the conversation and its current question. A nil
// question with nil error means the tap was stale and the user has been
// nudged.
func (h *CallbackHandler) currentQuestion(ctx context.Context, msg *Message) (*state.Conversation, *entity.Question, error) {
	conv, err := h.states.Get(ctx, msg.UserID)
	if errors.Is(err, state.ErrNotFound) {
		return nil, nil, h.sender.Send(ctx, msg.ChatID, render.MsgNoConversation, nil)
	} else if err != nil {
		return nil, nil, err
	}

	if conv.Stage != state.StageAnswering {
		return nil, nil, h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}

	q, ok := conv.CurrentQuestion()
	if !ok {
		return nil, nil, h.sender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	}

	return conv, q, nil
}
