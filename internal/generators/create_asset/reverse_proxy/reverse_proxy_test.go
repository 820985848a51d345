package reverse_proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-ops/tfscaffold/internal/types"
)

func TestReverseProxyAssetGenerator_Run(t *testing.T) {
	dir := t.TempDir()
	record := &types.ProjectRecord{
		ProjectName:         "shop",
		ProviderID:          "hetzner",
		ReverseProxyEnabled: true,
		ProxyDomain:         "shop.example.com",
		ProxyContactEmail:   "ops@example.com",
	}

	files, err := NewReverseProxyAssetGenerator(ReverseProxyOpts{ProjectDir: dir, Record: record}).Run()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("reverse-proxy", "Caddyfile"), filepath.Join("reverse-proxy", "setup-remote.sh")}, files)

	caddyfile, err := os.ReadFile(filepath.Join(dir, "reverse-proxy", "Caddyfile"))
	require.NoError(t, err)
	assert.Contains(t, string(caddyfile), "email ops@example.com")
	assert.Contains(t, string(caddyfile), "shop.example.com {")
	assert.Contains(t, string(caddyfile), "reverse_proxy 127.0.0.1:3000")
	assert.Contains(t, string(caddyfile), "root * /var/www/shop")

	script, err := os.ReadFile(filepath.Join(dir, "reverse-proxy", "setup-remote.sh"))
	require.NoError(t, err)
	for _, want := range []string{
		"[1/6]", "[6/6]",
		"caddy validate --config",
		"systemctl reload caddy || sudo systemctl restart caddy",
		"systemctl is-active --quiet caddy",
		".public_ip.value",
	} {
		assert.Contains(t, string(script), want)
	}

	info, err := os.Stat(filepath.Join(dir, "reverse-proxy", "setup-remote.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestReverseProxyAssetGenerator_CustomPort(t *testing.T) {
	dir := t.TempDir()
	record := &types.ProjectRecord{ProjectName: "api", ReverseProxyEnabled: true, ProxyDomain: "api.example.com", ProxyContactEmail: "a@example.com"}

	_, err := NewReverseProxyAssetGenerator(ReverseProxyOpts{ProjectDir: dir, Record: record, UpstreamPort: 8080}).Run()
	require.NoError(t, err)

	caddyfile, err := os.ReadFile(filepath.Join(dir, "reverse-proxy", "Caddyfile"))
	require.NoError(t, err)
	assert.Contains(t, string(caddyfile), "reverse_proxy 127.0.0.1:8080")
}

func TestReverseProxyAssetGenerator_Disabled(t *testing.T) {
	dir := t.TempDir()
	record := &types.ProjectRecord{ProjectName: "shop"}

	_, err := NewReverseProxyAssetGenerator(ReverseProxyOpts{ProjectDir: dir, Record: record}).Run()
	assert.ErrorIs(t, err, types.ErrFeatureDisabled)
	assert.NoDirExists(t, filepath.Join(dir, "reverse-proxy"))
}
