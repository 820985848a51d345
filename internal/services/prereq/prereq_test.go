package prereq

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/fatih/color"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestChecker(t *testing.T) {
	tests := []struct {
		name            string
		installed       []string
		wantErr         bool
		ghAvailable     bool
		missingOptional []string
	}{
		{
			name:        "everything installed",
			installed:   []string{"jq", "terraform", "gh", "bc", "pandoc"},
			ghAvailable: true,
		},
		{
			name:            "jq missing is fatal",
			installed:       []string{"terraform", "gh", "bc", "pandoc"},
			wantErr:         true,
			ghAvailable:     true,
			missingOptional: nil,
		},
		{
			name:            "optional tools missing",
			installed:       []string{"jq"},
			missingOptional: []string{"terraform", "gh", "bc", "pandoc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewCheckerWithLookPath(fakeLookPath(tt.installed...)).Check(DefaultCollaborators)

			err := report.Err()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrMissingCollaborator))
				var fatal *types.FatalSetupError
				assert.ErrorAs(t, err, &fatal)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.ghAvailable, report.Available("gh"))

			var names []string
			for _, m := range report.MissingOptional() {
				names = append(names, m.Name)
			}
			assert.Equal(t, tt.missingOptional, names)
		})
	}
}

func TestReport_AvailableUnchecked(t *testing.T) {
	report := NewCheckerWithLookPath(fakeLookPath("jq")).Check([]Collaborator{JQ})
	assert.True(t, report.Available("jq"))
	assert.False(t, report.Available("gh"))
}

func TestReport_Print(t *testing.T) {
	color.NoColor = true
	report := NewCheckerWithLookPath(fakeLookPath("gh")).Check([]Collaborator{JQ, GitHubCLI, Pandoc})

	var buf bytes.Buffer
	report.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "[FAILED] jq is required")
	assert.Contains(t, out, "[OK] gh (/usr/bin/gh)")
	assert.Contains(t, out, "[MISSING] pandoc")
}
