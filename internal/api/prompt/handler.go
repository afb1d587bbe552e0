package prompt

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/formatter"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/logger"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/response"
	"github.com/promptcraft/promptcraft-backend/internal/pkg/validator"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "promptcraft-backend"

// Handler exposes the prompt-building flows over HTTP.
type Handler struct {
	usecase   PromptUsecase
	validator *validator.Validator
	devMode   bool
}

func NewHandler(usecase PromptUsecase, validator *validator.Validator, devMode bool) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		devMode:   devMode,
	}
}

// ServiceInfo handles GET / - service identity and mode
func (h *Handler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.ServiceInfo{
		Status:  "ok",
		Service: ServiceName,
		DevMode: h.devMode,
	})
}

// GenerateQuestions handles POST /generate-questions - clarification questions for an idea
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateQuestions")

	var req entity.Idea
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateIdea(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "generating questions",
		zap.String("category", string(req.Category.Normalize())),
		zap.Int("idea_chars", len(req.Description)),
	)

	response.Success(w, h.usecase.GenerateQuestions(ctx, &req))
}

// GeneratePrompt handles POST /generate-prompt - final prompt from idea and answers
func (h *Handler) GeneratePrompt(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GeneratePrompt")

	var req entity.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidatePromptRequest(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "generating prompt",
		zap.String("category", string(req.Category.Normalize())),
		zap.Int("answers", len(req.Answers)),
	)

	response.Success(w, h.usecase.GeneratePrompt(ctx, &req))
}

// SuggestAnswer handles POST /suggest-answer - one model-suggested answer for a question
func (h *Handler) SuggestAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SuggestAnswer")

	var req entity.SuggestAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSuggestAnswer(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctxzap.Info(ctx, "suggesting answer",
		zap.String("question_id", req.Question.ID),
		zap.String("question_type", string(req.Question.Type)),
	)

	response.Success(w, h.usecase.SuggestAnswer(ctx, &req))
}

// ExportPrompt handles POST /export-prompt?format=... - render a prompt as a downloadable document
func (h *Handler) ExportPrompt(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportPrompt")

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.ExportFormatMarkdown
	}

	var req entity.ExportPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateExportPrompt(&req, format); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	title := req.Title
	if title == "" {
		title = formatter.DefaultTitle
	}

	f, err := formatter.NewFactory().Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
		return
	}

	data, err := f.Format(title, req.Prompt)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render document", err)
		return
	}

	ctxzap.Info(ctx, "prompt exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	response.Attachment(w, f.ContentType(), "prompt"+f.FileExtension(), data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}
