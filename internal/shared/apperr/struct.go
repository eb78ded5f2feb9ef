package apperr

type Kind string

type AppError struct {
	Kind      Kind
	PublicMsg string            // safe to return to the caller
	Fields    map[string]string // per-property validation messages (optional)
	Err       error             // internal cause (for logs only)
}
