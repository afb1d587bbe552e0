package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/promptcraft/promptcraft-backend/internal/config"
	"github.com/promptcraft/promptcraft-backend/internal/entity"
	"github.com/promptcraft/promptcraft-backend/internal/integration/common"
	pkghttp "github.com/promptcraft/promptcraft-backend/pkg/http"
)

// Connector talks to the Gemini generateContent REST API and satisfies the
// usecase ModelConnector contract: one instruction + content pair in, raw
// completion text out.
type Connector struct {
	config    config.GeminiConnectorConfig
	connector *pkghttp.Connector
}

func NewConnector(cfg config.GeminiConnectorConfig) *Connector {
	return &Connector{
		config: cfg,
		// The key rides a header transport, so request logs never carry it.
		connector: common.NewBaseConnector(cfg.BaseURL, cfg.HTTPClientConfig,
			pkghttp.WithAPIKey("x-goog-api-key", cfg.APIKey),
		),
	}
}

// Complete performs a single generateContent call. Transport failures, error
// statuses and candidate-free responses all come back as errors; there is no
// retrying here.
func (c *Connector) Complete(ctx context.Context, instructions, content string) (string, error) {
	ctxzap.Info(ctx, "calling gemini", zap.String("model", c.config.Model))

	req := &genRequest{
		SystemInstruction: &genContent{Parts: []genPart{{Text: instructions}}},
		Contents: []genContent{
			{Role: "user", Parts: []genPart{{Text: content}}},
		},
	}

	endpoint := fmt.Sprintf("/models/%s:generateContent", c.config.Model)

	var resp genResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("gemini generateContent: %w", err)
	}

	text := resp.text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no candidate text", entity.ErrEmptyCompletion)
	}

	ctxzap.Info(ctx, "gemini completion received", zap.Int("chars", len(text)))
	return text, nil
}
