package ptr

// Ref returns a pointer to the value passed as argument. Handy for optional
// struct fields in literals.
func Ref[T any](v T) *T {
	return &v
}
