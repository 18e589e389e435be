package contexthelpers

import (
	"context"
)

// ScopeID returns the browser storage scope bound to the request, or the
// empty string when middleware has not resolved one.
func ScopeID(ctx context.Context) string {
	scopeID, ok := ctx.Value(ScopeIDContextKey).(string)
	if !ok {
		return ""
	}

	return scopeID
}
