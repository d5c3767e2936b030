package web

import (
	"context"
	"net/http"

	"github.com/minoru856-crypto/ai-shigeki/internal/core"
)

// withRequestMetadata copies the client IP and User-Agent into ctx for the
// import history.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, clientIP(r))
	return core.ContextWithUserAgent(ctx, r.UserAgent())
}
