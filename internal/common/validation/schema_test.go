// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["clientId", "profile"],
  "properties": {
    "clientId": {"type": "string"},
    "profile": {
      "type": "object",
      "required": ["monthlyIncome", "monthsEmployed"],
      "properties": {
        "monthlyIncome": {"type": "number"},
        "monthsEmployed": {"type": "number"}
      }
    }
  }
}`

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile([]byte(`{"type": 12}`))
	assert.Error(t, err)

	assert.Panics(t, func() { MustCompile([]byte(`not json`)) })
}

func TestSchema_Validate(t *testing.T) {
	schema := MustCompile([]byte(testSchema))

	tests := []struct {
		name       string
		document   map[string]interface{}
		wantValid  bool
		wantFields []string
		wantCode   string
	}{
		{
			name: "valid document",
			document: map[string]interface{}{
				"clientId": "c-1",
				"profile": map[string]interface{}{
					"monthlyIncome":  1200000.0,
					"monthsEmployed": 8,
				},
			},
			wantValid: true,
		},
		{
			name:       "missing root field",
			document:   map[string]interface{}{"clientId": "c-1"},
			wantFields: []string{"profile"},
			wantCode:   "REQUIRED",
		},
		{
			name: "missing nested fields",
			document: map[string]interface{}{
				"clientId": "c-1",
				"profile":  map[string]interface{}{},
			},
			wantFields: []string{"profile.monthlyIncome", "profile.monthsEmployed"},
			wantCode:   "REQUIRED",
		},
		{
			name: "wrong type",
			document: map[string]interface{}{
				"clientId": "c-1",
				"profile": map[string]interface{}{
					"monthlyIncome":  "a lot",
					"monthsEmployed": 8,
				},
			},
			wantFields: []string{"profile.monthlyIncome"},
			wantCode:   "INVALID_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(tt.document)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid)
			if tt.wantValid {
				assert.Empty(t, result.Errors)
				return
			}
			assert.Equal(t, tt.wantFields, result.FieldsWithCode(tt.wantCode))
			for _, f := range tt.wantFields {
				assert.True(t, result.HasErrors(f))
			}
			assert.NotEmpty(t, result.Error())
		})
	}
}

func TestValidationResult_Messages(t *testing.T) {
	vr := &ValidationResult{Errors: []ValidationError{
		{Field: "profile.monthlyIncome", Message: "monthlyIncome is required", Code: "REQUIRED"},
		{Field: "clientId", Message: "Invalid type", Code: "INVALID_TYPE"},
	}}

	assert.Equal(t, []string{
		"profile.monthlyIncome: monthlyIncome is required",
		"clientId: Invalid type",
	}, vr.GetErrorMessages())
	assert.Equal(t, "profile.monthlyIncome: monthlyIncome is required; clientId: Invalid type", vr.Error())
	assert.False(t, vr.HasErrors("locationScore"))
}
