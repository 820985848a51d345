package features

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-ops/tfscaffold/internal/types"
)

func TestEnabled(t *testing.T) {
	record := &types.ProjectRecord{ReverseProxyEnabled: true, BillingEnabled: true}
	var names []string
	for _, f := range Enabled(FeatureOpts{Record: record}) {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{ReverseProxy, Billing}, names)
}

func TestRun_CollectsFailuresWithoutStopping(t *testing.T) {
	set := &types.GeneratedArtifactSet{}
	Run(context.Background(), set, []Feature{
		{Name: "a", Run: func(context.Context) ([]string, []string, error) {
			return []string{"a/one"}, []string{"a warned"}, nil
		}},
		{Name: "b", Run: func(context.Context) ([]string, []string, error) {
			return nil, nil, errors.New("boom")
		}},
		{Name: "c", Run: func(context.Context) ([]string, []string, error) {
			return []string{"c/one", "c/two"}, nil, nil
		}},
	})

	assert.Equal(t, []string{"a/one", "c/one", "c/two"}, set.Files)
	assert.Equal(t, []string{"a warned"}, set.Warnings)
	require.Len(t, set.Failures, 1)
	assert.Equal(t, "b", set.Failures[0].Feature)
	assert.True(t, set.Degraded())
}

func TestRun_Generators(t *testing.T) {
	dir := t.TempDir()
	record := &types.ProjectRecord{
		ProjectName:         "shop",
		ProviderID:          "hetzner",
		ProviderName:        "Hetzner Cloud",
		ReverseProxyEnabled: true,
		ProxyDomain:         "shop.example.com",
		ProxyContactEmail:   "ops@example.com",
		BillingEnabled:      true,
		BillingModel:        "fixed",
		BillingMonthlyFee:   "100",
		BillingCurrency:     "EUR",
	}

	set := &types.GeneratedArtifactSet{Dir: dir}
	Run(context.Background(), set, Enabled(FeatureOpts{ProjectDir: dir, Record: record}))

	assert.Empty(t, set.Failures)
	assert.Len(t, set.Files, 4)
	assert.FileExists(t, filepath.Join(dir, "reverse-proxy", "Caddyfile"))
	assert.FileExists(t, filepath.Join(dir, "billing", "BILLING_GUIDE.md"))
	_, err := os.Stat(filepath.Join(dir, "handover"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewFeature_Unknown(t *testing.T) {
	_, _, err := NewFeature("dns", FeatureOpts{Record: &types.ProjectRecord{}}).Run(context.Background())
	assert.ErrorContains(t, err, `unknown feature "dns"`)
}
