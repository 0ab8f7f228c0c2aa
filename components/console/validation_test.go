package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitSchemaDefinition() PanelDefinition {
	return PanelDefinition{
		Code: "test.panel.limited",
		Name: "Limited",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 50,
				},
			},
			"additionalProperties": false,
		},
	}
}

func TestJSONSchemaValidatorAcceptsValidConfig(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(limitSchemaDefinition(), map[string]any{"limit": 25})
	require.NoError(t, err)
}

func TestJSONSchemaValidatorRejectsOutOfRange(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(limitSchemaDefinition(), map[string]any{"limit": 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test.panel.limited")
}

func TestJSONSchemaValidatorRejectsUnknownKeys(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(limitSchemaDefinition(), map[string]any{"refresh": true})
	require.Error(t, err)
}

func TestJSONSchemaValidatorNilConfig(t *testing.T) {
	validator := NewJSONSchemaValidator()
	require.NoError(t, validator.Validate(limitSchemaDefinition(), nil))
}

func TestJSONSchemaValidatorSkipsEmptySchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PanelDefinition{Code: "test.panel.free"}
	require.NoError(t, validator.Validate(def, map[string]any{"anything": "goes"}))
}

func TestJSONSchemaValidatorReusesCompiledSchema(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := limitSchemaDefinition()
	require.NoError(t, validator.Validate(def, map[string]any{"limit": 1}))

	validator.mu.RLock()
	_, cached := validator.compiled[def.Code]
	validator.mu.RUnlock()
	assert.True(t, cached)
}
