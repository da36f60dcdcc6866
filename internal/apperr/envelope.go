package apperr

// Envelope is the canonical error body for all 4xx/5xx HTTP responses.
type Envelope struct {
	Detail string `json:"detail"`
}

func NewEnvelope(msg string) *Envelope { return &Envelope{Detail: msg} }

// FieldErrors wraps per-field validation failures from request binding.
type FieldErrors struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Detail: "validation error", Fields: fields}
}
