package contexthelpers

import (
	"context"
	"net/http"
)

func SetScopeID(r *http.Request, scopeID string) *http.Request {
	ctx := context.WithValue(r.Context(), ScopeIDContextKey, scopeID)
	return r.WithContext(ctx)
}
