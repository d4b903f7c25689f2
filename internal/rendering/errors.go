// Package rendering interprets a TemplateSchema over ResumeData into a continuous HTML document tree.
package rendering

import "fmt"

// TemplateError represents a failure to resolve or use a template
type TemplateError struct {
	TemplateID string
	Message    string
	Cause      error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %s: %v", e.TemplateID, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s: %s", e.TemplateID, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
