// Package contexthelpers provides typed accessors for request-scoped values.
package contexthelpers

type contextKey string

const ScopeIDContextKey = contextKey("scopeID")
