package common

import (
	"github.com/promptcraft/promptcraft-backend/internal/config"
	pkgHTTP "github.com/promptcraft/promptcraft-backend/pkg/http"
)

// NewBaseConnector assembles the shared JSON connector from client config:
// timeouts, keep-alives and outbound request logging. Connector-specific
// options, credentials above all, come in through extra.
func NewBaseConnector(baseURL string, cfg config.HTTPClientConfig, extra ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	opts = append(opts, extra...)

	return pkgHTTP.NewConnector(baseURL, opts...)
}
