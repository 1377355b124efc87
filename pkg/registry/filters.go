package registry

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-logr/logr"
	"github.com/gorilla/handlers"

	"github.com/embedx-ml/embedx/pkg/auth"
	"github.com/embedx-ml/embedx/pkg/errors"
)

func LoggingFilter(log logr.Logger, next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(os.Stdout, next, func(_ io.Writer, params handlers.LogFormatterParams) {
		log.Info("request",
			"method", params.Request.Method,
			"url", params.URL.Path,
			"status", params.StatusCode,
			"size", params.Size,
		)
	})
}

// NewOIDCAuthFilter rejects requests not carrying a bearer token verifiable
// against the issuer. The health endpoint stays open for probes.
func NewOIDCAuthFilter(ctx context.Context, issuer string, next http.Handler) (http.Handler, error) {
	provider, err := auth.NewOIDCProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	verifier := provider.Verifier(&oidc.Config{SkipClientIDCheck: true})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			ResponseError(w, errors.NewUnauthorizedError("missing bearer token"))
			return
		}
		if _, err := verifier.Verify(r.Context(), token); err != nil {
			ResponseError(w, errors.NewUnauthorizedError(err.Error()))
			return
		}
		next.ServeHTTP(w, r)
	}), nil
}
