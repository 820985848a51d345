package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	bindings := Bindings{
		ProjectNameToken: "acme",
		"region":         "nyc3",
		"tricky":         "{{region}}",
	}

	tests := []struct {
		name            string
		template        string
		expected        string
		expectedMissing []string
	}{
		{
			name:     "no placeholders",
			template: "plain text",
			expected: "plain text",
		},
		{
			name:     "project name",
			template: "{{PROJECT_NAME}}-tfstate",
			expected: "acme-tfstate",
		},
		{
			name:     "multiple tokens",
			template: "https://{{region}}.example.com/{{PROJECT_NAME}}",
			expected: "https://nyc3.example.com/acme",
		},
		{
			name:     "whitespace inside braces",
			template: "{{ region }}",
			expected: "nyc3",
		},
		{
			name:     "replacement text is not rescanned",
			template: "{{tricky}}",
			expected: "{{region}}",
		},
		{
			name:            "unbound token becomes empty and is reported once",
			template:        "{{unknown}}-{{unknown}}-x",
			expected:        "--x",
			expectedMissing: []string{"unknown"},
		},
		{
			name:     "single braces are left alone",
			template: "{region} ${var.region}",
			expected: "{region} ${var.region}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := Substitute(tt.template, bindings)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expectedMissing, missing)
		})
	}
}

func TestSubstituteValue_Nested(t *testing.T) {
	input := map[string]any{
		"bucket":  "{{PROJECT_NAME}}-state",
		"encrypt": true,
		"endpoints": map[string]any{
			"s3": "https://{{region}}.digitaloceanspaces.com",
		},
		"tags": []any{"{{PROJECT_NAME}}", "{{missing}}", uint64(3)},
	}

	out, missing := SubstituteValue(input, Bindings{ProjectNameToken: "acme", "region": "ams3"})

	expected := map[string]any{
		"bucket":  "acme-state",
		"encrypt": true,
		"endpoints": map[string]any{
			"s3": "https://ams3.digitaloceanspaces.com",
		},
		"tags": []any{"acme", "", uint64(3)},
	}
	assert.Equal(t, expected, out)
	assert.Equal(t, []string{"missing"}, missing)

	// input untouched
	assert.Equal(t, "{{PROJECT_NAME}}-state", input["bucket"])
}

func TestContainsPlaceholder(t *testing.T) {
	assert.True(t, ContainsPlaceholder("x-{{A}}"))
	assert.False(t, ContainsPlaceholder("x-{A}"))
	assert.False(t, ContainsPlaceholder("{{ 1abc }}"))
}
