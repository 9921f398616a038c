package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"task-manager/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using the default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks s has at most max characters. A max of 0 or less means no limit.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return max <= 0 || utf8.RuneCountInString(s) <= max
}

// HasControlCharacters reports whether s contains newlines, tabs or other control runes
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// Trim trims surrounding whitespace
func (v *Validator) Trim(s string) string {
	return strings.TrimSpace(s)
}

// TitleMaxLength returns the configured title limit, 0 when unlimited
func (v *Validator) TitleMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TitleMaxLength
	}
	return 0
}

// DescriptionMaxLength returns the configured description limit, 0 when unlimited
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 0
}
