package composer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChoices = []Choice{
	{Value: "aws", Label: "Amazon Web Services", Group: "Cloud"},
	{Value: "gcp", Label: "Google Cloud", Group: "Cloud"},
	{Value: "heroku", Label: "Heroku", Group: "Platform"},
}

func TestLinePrompter_Choose(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		defaultIndex int
		want         int
		wantErr      bool
	}{
		{name: "index", input: "2\n", defaultIndex: -1, want: 1},
		{name: "value", input: "heroku\n", defaultIndex: -1, want: 2},
		{name: "default on empty", input: "\n", defaultIndex: 2, want: 2},
		{name: "empty without default re-asks", input: "\n3\n", defaultIndex: -1, want: 2},
		{name: "out of range re-asks", input: "4\n-1\n1\n", defaultIndex: -1, want: 0},
		{name: "closed input", input: "9\n", defaultIndex: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)
			got, err := p.Choose("provider", "Select a provider", testChoices, tt.defaultIndex)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Platform")
		})
	}
}

func TestLinePrompter_AskAndConfirm(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("\ncustom\nmaybe\nY\n\n"), &bytes.Buffer{})

	v, err := p.Ask("a", "First", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)

	v, err = p.Ask("b", "Second", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "custom", v)

	ok, err := p.Confirm("c", "Third", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("d", "Fourth", true)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = p.Ask("e", "Fifth", "")
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestLinePrompter_LastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("last"), &bytes.Buffer{})
	v, err := p.Ask("a", "Question", "")
	require.NoError(t, err)
	assert.Equal(t, "last", v)
}

func TestAnswerPrompter(t *testing.T) {
	p := newAnswers(map[string]any{
		"provider":        2,
		"hosting_model":   "unknown",
		"billing.enabled": "maybe",
		"variables.size":  " large ",
	})

	idx, err := p.Choose("provider", "", testChoices, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = p.Choose("hosting_model", "", testChoices, 0)
	assert.Error(t, err)

	idx, err = p.Choose("missing", "", testChoices, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = p.Choose("missing", "", testChoices, -1)
	assert.Error(t, err)

	_, err = p.Confirm("billing.enabled", "", false)
	assert.Error(t, err)

	v, err := p.Ask("variables.size", "", "small")
	require.NoError(t, err)
	assert.Equal(t, "large", v)

	v, err = p.Ask("variables.region", "", "nyc3")
	require.NoError(t, err)
	assert.Equal(t, "nyc3", v)
}

func TestHostingOptions(t *testing.T) {
	assert.Equal(t, HostingPlatformOnly, ClassifyHosting("netlify"))
	assert.Equal(t, HostingSelfHostable, ClassifyHosting("azure"))
	assert.Equal(t, HostingUnclassified, ClassifyHosting("acme"))
	assert.Len(t, HostingOptions("digitalocean"), 2)
	assert.Len(t, HostingOptions("hetzner"), 1)
	assert.Nil(t, HostingOptions("acme"))
}
