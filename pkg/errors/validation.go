package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Input limits applied before compilation. They keep API requests small;
// the compiler itself has no intrinsic limit.
const (
	MaxQueryLength    = 4096
	MaxSelectorLength = 256
	MaxDimension      = 64
)

// ValidateQuery performs coarse safety checks on raw query text.
// Grammar checks are left to the tokenizer; this only rejects input that
// could never be a query:
//   - No empty text
//   - No control characters other than tab, newline and carriage return,
//     which the tokenizer trims around tokens
//   - Maximum length of MaxQueryLength characters
func ValidateQuery(query string) error {
	if query == "" {
		return New(ErrCodeGrammar, "query cannot be empty")
	}

	if len(query) > MaxQueryLength {
		return New(ErrCodeInvalidInput, "query too long (max %d characters)", MaxQueryLength)
	}

	for _, r := range query {
		if unicode.IsControl(r) && !isQuerySpace(r) {
			return New(ErrCodeInvalidInput, "query contains invalid control characters")
		}
	}

	return nil
}

func isQuerySpace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r'
}

// ValidateContainer validates the container selector.
// It must be a single non-empty selector without whitespace or any of the
// query delimiters.
func ValidateContainer(container string) error {
	if container == "" {
		return New(ErrCodeInvalidSelector, "container selector cannot be empty")
	}

	if len(container) > MaxSelectorLength {
		return New(ErrCodeInvalidSelector, "container selector too long (max %d characters)", MaxSelectorLength)
	}

	for _, r := range container {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidSelector, "container selector cannot contain whitespace: %q", container)
		}
	}

	if strings.ContainsAny(container, "/,*") {
		return New(ErrCodeInvalidSelector, "container selector cannot contain '/', ',' or '*': %q", container)
	}

	return nil
}

// ValidateDimensions validates the column and row counts of dimension mode.
func ValidateDimensions(columns, rows int) error {
	if columns < 1 || rows < 1 {
		return New(ErrCodeInvalidDimensions, "columns and rows must be positive (got %dx%d)", columns, rows)
	}
	if columns > MaxDimension || rows > MaxDimension {
		return New(ErrCodeInvalidDimensions, "columns and rows must not exceed %d (got %dx%d)", MaxDimension, columns, rows)
	}
	return nil
}

// layoutNameRegex matches catalogue names such as "holy-grail" or "3-col".
var layoutNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateLayoutName validates a named-layout identifier.
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeUnknownLayout, "layout name cannot be empty")
	}

	if !layoutNameRegex.MatchString(name) {
		return New(ErrCodeUnknownLayout, "invalid layout name: %q (lowercase letters, digits and '-')", name)
	}

	return nil
}
