// Package errors classifies operational failures so the CLI can map them to
// stable exit codes and print an actionable hint instead of a stack dump.
package errors

import "errors"

type Category string

const (
	CategoryInvalidInput      Category = "invalid_input"
	CategoryDependencyMissing Category = "dependency_missing"
	CategoryIOFailure         Category = "io_failure"
	CategoryConflict          Category = "conflict"
	CategoryInternalFailure   Category = "internal_failure"
)

type classifiedError struct {
	category Category
	hint     string
	cause    error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

// Wrap attaches a category and hint to cause. A nil cause stays nil.
func Wrap(cause error, category Category, hint string) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{category: category, hint: hint, cause: cause}
}

// New builds a classified error from a plain message.
func New(message string, category Category, hint string) error {
	return &classifiedError{category: category, hint: hint, cause: errors.New(message)}
}

// CategoryOf returns the category of err, or empty for unclassified errors.
func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

// HintOf returns the hint of err, or empty for unclassified errors.
func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}
