package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidatePersonName covers blank, diacritic, and over-length inputs.
func TestValidatePersonName(t *testing.T) {
	v := NewValidationService()

	assert.NoError(t, v.ValidatePersonName("name", "Jan"))
	assert.NoError(t, v.ValidatePersonName("surname", "Łukaszewicz"))

	assert.Error(t, v.ValidatePersonName("name", ""))
	assert.Error(t, v.ValidatePersonName("name", "   "))
	assert.Error(t, v.ValidatePersonName("name", strings.Repeat("a", MaxPersonNameLength+1)))
}

// TestValidateGroupName covers blank and over-length group names.
func TestValidateGroupName(t *testing.T) {
	v := NewValidationService()

	assert.NoError(t, v.ValidateGroupName("Night Watch"))
	assert.NoError(t, v.ValidateGroupName("Zastęp Żbików"))

	assert.Error(t, v.ValidateGroupName(""))
	assert.Error(t, v.ValidateGroupName("\t "))
	assert.Error(t, v.ValidateGroupName(strings.Repeat("x", MaxGroupNameLength+1)))
}

// TestSanitizeString verifies control characters are stripped and whitespace
// is trimmed while inner text is preserved.
func TestSanitizeString(t *testing.T) {
	v := NewValidationService()

	assert.Equal(t, "Jan Kowalski", v.SanitizeString("  Jan Kowalski\x00 "))
	assert.Equal(t, "Ala", v.SanitizeString("\x1FAla\x7F"))
	assert.Equal(t, "", v.SanitizeString(" \x08 "))
}
