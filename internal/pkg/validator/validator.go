package validator

// Validator checks a tagged struct and returns nil when every rule passes.
type Validator interface {
	Validate(data any) error
}
