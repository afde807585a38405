package errors

import (
	"fmt"
)

// ParseError represents a document or config decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures user input that was rejected before touching the document.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvariantError reports a structural operation that was refused because it
// would break a document invariant. The document is left untouched.
type InvariantError struct {
	Operation string
	Message   string
}

// NewInvariantError constructs an InvariantError.
func NewInvariantError(operation, message string) error {
	return &InvariantError{Operation: operation, Message: message}
}

func (e *InvariantError) Error() string {
	if e == nil {
		return ""
	}
	if e.Operation != "" {
		return fmt.Sprintf("refused %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("refused: %s", e.Message)
}

// AssetError labels an upload, delete or fetch failure with the asset involved.
type AssetError struct {
	Asset string
	Err   error
}

// NewAssetError constructs an AssetError.
func NewAssetError(asset string, err error) error {
	return &AssetError{Asset: asset, Err: err}
}

func (e *AssetError) Error() string {
	if e == nil {
		return ""
	}
	if e.Asset != "" {
		return fmt.Sprintf("asset error [%s]: %v", e.Asset, e.Err)
	}
	return fmt.Sprintf("asset error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *AssetError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExportError represents a failure while rendering one slide of an export.
type ExportError struct {
	SlideIndex int
	SlideID    string
	Err        error
}

// NewExportError constructs an ExportError for the zero-based slide index.
func NewExportError(index int, slideID string, err error) error {
	return &ExportError{SlideIndex: index, SlideID: slideID, Err: err}
}

func (e *ExportError) Error() string {
	if e == nil {
		return ""
	}
	if e.SlideIndex < 0 {
		return fmt.Sprintf("export error: %v", e.Err)
	}
	return fmt.Sprintf("export error on slide %d: %v", e.SlideIndex+1, e.Err)
}

// Unwrap exposes the root error.
func (e *ExportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TranslationError indicates the translation service or path patching failed.
type TranslationError struct {
	Path string
	Err  error
}

// NewTranslationError constructs a TranslationError. Path may be empty when
// the failure is not tied to a single text leaf.
func NewTranslationError(path string, err error) error {
	return &TranslationError{Path: path, Err: err}
}

func (e *TranslationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("translation error at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("translation error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *TranslationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
