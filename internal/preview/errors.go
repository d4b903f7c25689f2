package preview

import "fmt"

// Error represents a preview failure for one template
type Error struct {
	TemplateID string
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	id := e.TemplateID
	if id == "" {
		id = "inline"
	}
	if e.Cause != nil {
		return fmt.Sprintf("preview %s: %s: %v", id, e.Message, e.Cause)
	}
	return fmt.Sprintf("preview %s: %s", id, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
