package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

func firstErrorType(t *testing.T, err error) ValidationErrorType {
	t.Helper()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	return ve.Errors[0].Type
}

func TestTaskValidator_ValidateTitle(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid title", "Buy milk", false, ""},
		{"Empty title", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Long title", strings.Repeat("a", 300), false, ""},
		{"Embedded tab", "Buy\tmilk", false, ""},
		{"Embedded newline", "Buy\nmilk", false, ""},
		{"Punctuation and symbols", "Pay rent @ 5% (urgent)!", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTitle(tt.input)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorType, firstErrorType(t, err))
		})
	}
}

func TestTaskValidator_ValidateDescription(t *testing.T) {
	validator := NewTaskValidator()

	assert.NoError(t, validator.ValidateDescription(""))
	assert.NoError(t, validator.ValidateDescription("multi\nline\tdescription"))
	assert.NoError(t, validator.ValidateDescription(strings.Repeat("d", 2500)))

	cfg := config.NewConfig()
	cfg.Validation.DescriptionMaxLength = 2000
	limited := NewTaskValidatorWithConfig(cfg)
	assert.NoError(t, limited.ValidateDescription(strings.Repeat("d", 2000)))

	err := limited.ValidateDescription(strings.Repeat("d", 2001))
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidLength, firstErrorType(t, err))
}

func TestTaskValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	validator := NewTaskValidatorWithConfig(cfg)

	assert.NoError(t, validator.ValidateTitle("12345"))
	assert.NoError(t, validator.ValidateTitle("  12345  "), "limit applies after trimming")

	err := validator.ValidateTitle("123456")
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidLength, firstErrorType(t, err))
	assert.Equal(t, "title must be at most 5 characters long", err.(*ValidationError).GetUserFriendlyMessage())
}

func TestTaskValidator_ValidateNewTask(t *testing.T) {
	validator := NewTaskValidator()

	t.Run("trims fields", func(t *testing.T) {
		got, err := validator.ValidateNewTask(domain.NewTask{Title: "  Buy milk ", Description: " 2 litres "})
		require.NoError(t, err)
		assert.Equal(t, domain.NewTask{Title: "Buy milk", Description: "2 litres"}, got)
	})

	t.Run("collects every field error", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Validation.DescriptionMaxLength = 10
		limited := NewTaskValidatorWithConfig(cfg)

		_, err := limited.ValidateNewTask(domain.NewTask{Title: "", Description: strings.Repeat("d", 11)})
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.GetFieldErrors(FieldTitle), 1)
		assert.Len(t, ve.GetFieldErrors(FieldDescription), 1)
	})
}

func TestTaskValidator_ValidatePatch(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		patch       domain.TaskPatch
		expected    domain.TaskPatch
		expectError bool
	}{
		{
			name:     "empty patch",
			patch:    domain.TaskPatch{},
			expected: domain.TaskPatch{},
		},
		{
			name:     "completed only",
			patch:    domain.TaskPatch{Completed: domain.BoolPtr(true)},
			expected: domain.TaskPatch{Completed: domain.BoolPtr(true)},
		},
		{
			name:     "title trimmed",
			patch:    domain.TaskPatch{Title: domain.StringPtr(" Final ")},
			expected: domain.TaskPatch{Title: domain.StringPtr("Final")},
		},
		{
			name:     "description cleared",
			patch:    domain.TaskPatch{Description: domain.StringPtr("")},
			expected: domain.TaskPatch{Description: domain.StringPtr("")},
		},
		{
			name:        "empty title",
			patch:       domain.TaskPatch{Title: domain.StringPtr("")},
			expectError: true,
		},
		{
			name:     "long description",
			patch:    domain.TaskPatch{Description: domain.StringPtr(strings.Repeat("d", 2500))},
			expected: domain.TaskPatch{Description: domain.StringPtr(strings.Repeat("d", 2500))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validator.ValidatePatch(tt.patch)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		id          string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"ObjectID hex", "65e1a0c2f1d2c3b4a5968778", false, ""},
		{"UUID", "3f2a9b7e-1c4d-4e8f-9a0b-2c3d4e5f6a7b", false, ""},
		{"Empty", "", true, ErrorTypeRequired},
		{"Blank", "  ", true, ErrorTypeRequired},
		{"Contains slash", "a/b", true, ErrorTypeInvalidFormat},
		{"Contains space", "a b", true, ErrorTypeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskID(tt.id)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errorType, firstErrorType(t, err))
		})
	}
}
