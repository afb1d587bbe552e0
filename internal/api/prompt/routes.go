package prompt

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the prompt-building endpoints on the router.
func RegisterRoutes(r chi.Router, handler *Handler) {
	r.Get("/", handler.ServiceInfo)
	r.Post("/generate-questions", handler.GenerateQuestions)
	r.Post("/generate-prompt", handler.GeneratePrompt)
	r.Post("/suggest-answer", handler.SuggestAnswer)
	r.Post("/export-prompt", handler.ExportPrompt)
}
