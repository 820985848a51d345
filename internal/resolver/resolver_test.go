package resolver

import (
	"errors"
	"testing"

	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor() *types.ProviderDescriptor {
	return &types.ProviderDescriptor{
		ID:   "digitalocean",
		Name: "DigitalOcean",
		Variables: []types.VariableSpec{
			{Name: "region", Default: "nyc3", Description: "Region"},
			{Name: "droplet_name", Default: "{{PROJECT_NAME}}-web", Description: "Droplet name"},
			{Name: "spaces_endpoint", Default: "https://{{region}}.digitaloceanspaces.com"},
			{Name: "do_token", Default: "", Description: "API token"},
		},
		Backend: map[string]map[string]any{
			"s3": {
				"bucket": "{{PROJECT_NAME}}-tfstate",
				"endpoints": map[string]any{
					"s3": "https://{{region}}.digitaloceanspaces.com",
				},
				"skip_region_validation": true,
			},
		},
	}
}

func TestResolve_DefaultsAndOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		expected  map[string]string
	}{
		{
			name:      "defaults only",
			overrides: nil,
			expected: map[string]string{
				"region":          "nyc3",
				"droplet_name":    "shop-web",
				"spaces_endpoint": "https://nyc3.digitaloceanspaces.com",
				"do_token":        "",
			},
		},
		{
			name:      "override feeds later defaults",
			overrides: map[string]string{"region": "ams3"},
			expected: map[string]string{
				"region":          "ams3",
				"droplet_name":    "shop-web",
				"spaces_endpoint": "https://ams3.digitaloceanspaces.com",
				"do_token":        "",
			},
		},
		{
			name:      "whitespace override keeps default",
			overrides: map[string]string{"droplet_name": "   "},
			expected: map[string]string{
				"region":          "nyc3",
				"droplet_name":    "shop-web",
				"spaces_endpoint": "https://nyc3.digitaloceanspaces.com",
				"do_token":        "",
			},
		},
		{
			name:      "override may use placeholders",
			overrides: map[string]string{"droplet_name": "{{PROJECT_NAME}}-api", "do_token": "dop_v1_abc"},
			expected: map[string]string{
				"region":          "nyc3",
				"droplet_name":    "shop-api",
				"spaces_endpoint": "https://nyc3.digitaloceanspaces.com",
				"do_token":        "dop_v1_abc",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, warnings, err := Resolve(testDescriptor(), "shop", tt.overrides)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.expected, resolved.Map())
			assert.Equal(t, []string{"region", "droplet_name", "spaces_endpoint", "do_token"}, resolved.Names())

			for _, v := range resolved.Map() {
				assert.False(t, ContainsPlaceholder(v))
			}
		})
	}
}

func TestResolve_UnknownPlaceholderWarns(t *testing.T) {
	desc := &types.ProviderDescriptor{
		ID:        "custom",
		Name:      "Custom",
		Variables: []types.VariableSpec{{Name: "zone", Default: "{{datacenter}}-a"}},
	}

	resolved, warnings, err := Resolve(desc, "shop", nil)
	require.NoError(t, err)

	zone, _ := resolved.Get("zone")
	assert.Equal(t, "-a", zone)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "{{datacenter}}")
}

func TestResolveWith_PropagatesAskError(t *testing.T) {
	boom := errors.New("stdin closed")
	_, _, err := ResolveWith(testDescriptor(), "shop", func(types.VariableSpec, string) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestResolveWith_PresentsSubstitutedDefault(t *testing.T) {
	var seen []string
	_, _, err := ResolveWith(testDescriptor(), "shop", func(spec types.VariableSpec, def string) (string, error) {
		seen = append(seen, def)
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"nyc3", "shop-web", "https://nyc3.digitaloceanspaces.com", ""}, seen)
}

func TestResolveBackend(t *testing.T) {
	desc := testDescriptor()
	vars, _, err := Resolve(desc, "shop", map[string]string{"region": "fra1"})
	require.NoError(t, err)

	settings, warnings, err := ResolveBackend(desc, "s3", "shop", vars)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "shop-tfstate", settings["bucket"])
	assert.Equal(t, map[string]any{"s3": "https://fra1.digitaloceanspaces.com"}, settings["endpoints"])
	assert.Equal(t, true, settings["skip_region_validation"])

	_, _, err = ResolveBackend(desc, "gcs", "shop", vars)
	assert.Error(t, err)
}
