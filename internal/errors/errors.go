package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file or pipe XON data to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrDepthExceeded    = errors.New("maximum nesting depth exceeded")
	ErrPathNotFound     = errors.New("path not found")
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeLex     ErrorType = "lex"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeDepth   ErrorType = "depth"
	ErrorTypeQuery   ErrorType = "query"
	ErrorTypeFormat  ErrorType = "format"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewLexError creates a new error wrapping a scanner failure
func NewLexError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeLex, Message: message, Err: err}
}

// NewParseError creates a new error wrapping a grammar failure
func NewParseError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParse, Message: message, Err: err}
}

// NewDepthError creates a new error for documents nested too deeply
func NewDepthError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeDepth, Message: message, Err: err}
}

// NewQueryError creates a new error related to path lookups and expressions
func NewQueryError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeQuery, Message: message, Err: err}
}

// NewFormatError creates a new error related to rendering values
func NewFormatError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFormat, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// NewConfigError creates a new error related to the tool configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// LexError reports a character that starts no valid token.
type LexError struct {
	Line   int
	Char   rune
	Reason string
}

func (e *LexError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unexpected character"
	}
	return fmt.Sprintf("line %d: %s %q", e.Line, reason, e.Char)
}

// ParseError reports a grammar violation. Found is "end of input" when the
// token sequence ran out.
type ParseError struct {
	Line     int
	Expected []string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected %s, found %s", e.Line, joinAlternatives(e.Expected), e.Found)
}

// DepthError reports nesting beyond the configured maximum.
type DepthError struct {
	Line  int
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("line %d: nesting exceeds maximum depth of %d", e.Line, e.Limit)
}

func (e *DepthError) Unwrap() error {
	return ErrDepthExceeded
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return "a value"
	case 1:
		return alts[0]
	default:
		return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
	}
}

// LineOf returns the source line carried by a lex, parse or depth error
// anywhere in err's chain.
func LineOf(err error) (int, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line, true
	}
	var depthErr *DepthError
	if errors.As(err, &depthErr) {
		return depthErr.Line, true
	}
	return 0, false
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		detail := appErr.Message
		if appErr.Err != nil {
			var lexErr *LexError
			var parseErr *ParseError
			var depthErr *DepthError
			switch {
			case errors.As(appErr.Err, &lexErr):
				detail = fmt.Sprintf("%s (%v)", appErr.Message, lexErr)
			case errors.As(appErr.Err, &parseErr):
				detail = fmt.Sprintf("%s (%v)", appErr.Message, parseErr)
			case errors.As(appErr.Err, &depthErr):
				detail = fmt.Sprintf("%s (%v)", appErr.Message, depthErr)
			case appErr.Type == ErrorTypeQuery, appErr.Type == ErrorTypeConfig:
				detail = fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
			}
		}
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", detail)
		case ErrorTypeLex:
			return fmt.Sprintf("XON syntax error: %s", detail)
		case ErrorTypeParse:
			return fmt.Sprintf("XON parsing error: %s", detail)
		case ErrorTypeDepth:
			return fmt.Sprintf("XON nesting error: %s", detail)
		case ErrorTypeQuery:
			return fmt.Sprintf("Query error: %s", detail)
		case ErrorTypeFormat:
			return fmt.Sprintf("Formatting error: %s", detail)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", detail)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", detail)
		default:
			return fmt.Sprintf("Error: %s", detail)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide XON data."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with XON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file or pipe XON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrDepthExceeded) {
		return "Error: The document is nested too deeply."
	}

	return fmt.Sprintf("Error: %v", err)
}
