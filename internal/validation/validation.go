// Package validation provides input validation for the presentation boundary.
// All validation methods return descriptive errors that are safe to show to users.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Maximum rune lengths for user-supplied names. Generous enough for any real
// name while keeping the roster display predictable.
const (
	MaxPersonNameLength = 100
	MaxGroupNameLength  = 100
)

var controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// ValidationService provides centralized input validation functions.
type ValidationService struct{}

// NewValidationService creates a new validation service.
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidatePersonName validates a person's given name or surname.
// Names may contain any printable characters (diacritics included) but must
// be non-blank and within the length limit.
func (v *ValidationService) ValidatePersonName(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if utf8.RuneCountInString(value) > MaxPersonNameLength {
		return fmt.Errorf("%s must be %d characters or less", fieldName, MaxPersonNameLength)
	}

	return nil
}

// ValidateGroupName validates a user group's display name.
func (v *ValidationService) ValidateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("group name is required")
	}

	if utf8.RuneCountInString(name) > MaxGroupNameLength {
		return fmt.Errorf("group name must be %d characters or less", MaxGroupNameLength)
	}

	return nil
}

// SanitizeString removes potentially dangerous characters from string input.
// Removes control characters and normalizes surrounding whitespace.
func (v *ValidationService) SanitizeString(input string) string {
	input = controlChars.ReplaceAllString(input, "")
	return strings.TrimSpace(input)
}
