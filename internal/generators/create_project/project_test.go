package create_project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-ops/tfscaffold/internal/registry"
	"github.com/launchpad-ops/tfscaffold/internal/resolver"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

func testConfig(t *testing.T) *types.ProjectConfiguration {
	t.Helper()

	reg, err := registry.Builtin()
	require.NoError(t, err)
	desc, err := reg.Get("digitalocean")
	require.NoError(t, err)

	vars, _, err := resolver.Resolve(desc, "shop", map[string]string{"do_token": "dop_v1_supersecret"})
	require.NoError(t, err)
	require.NoError(t, vars.Set(types.ProxyDomainVariable, "shop.example.com"))
	require.NoError(t, vars.Set(types.ProxyContactEmailVariable, "ops@example.com"))
	vars.Freeze()

	return &types.ProjectConfiguration{
		ProjectName:       "shop",
		Provider:          desc,
		Variables:         vars,
		HostingModel:      types.HostingSelfManaged,
		StateBackend:      types.StateBackend{Mode: types.BackendLocal},
		ReverseProxy:      &types.ReverseProxyConfig{Domain: "shop.example.com", ContactEmail: "ops@example.com"},
		Billing:           &types.BillingConfig{Model: types.BillingHybrid, MonthlyFee: "25", MarkupPercent: "5", Currency: "USD"},
		InjectedVariables: []string{types.ProxyDomainVariable, types.ProxyContactEmailVariable},
	}
}

func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestProjectGenerator_Run(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shop")
	cfg := testConfig(t)

	set, err := NewProjectGenerator(ProjectOpts{Config: cfg, OutputDir: dir}).Run()
	require.NoError(t, err)
	assert.Empty(t, set.Warnings)
	assert.Equal(t, []string{
		"versions.tf",
		"provider.tf",
		"backend.tf",
		"variables.tf",
		"terraform.tfvars.json",
		"main.tf",
		"outputs.tf",
		"deploy.sh",
		filepath.Join(".tfscaffold", "project.yaml"),
		"README.md",
		".gitignore",
	}, set.Files)

	info, err := os.Stat(filepath.Join(dir, "deploy.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dir, "terraform.tfvars.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	files := readTree(t, dir)
	assert.Contains(t, files["backend.tf"], `backend "local"`)
	assert.Contains(t, files["variables.tf"], `variable "proxy_domain"`)
	assert.Contains(t, files["deploy.sh"], "terraform plan -input=false -out=\"$PLAN_FILE\"")
	assert.Contains(t, files["deploy.sh"], "trap cleanup EXIT")
	assert.Contains(t, files["deploy.sh"], "| jq -r")
	assert.Contains(t, files[".gitignore"], "terraform.tfvars.json")
	assert.Contains(t, files["README.md"], "# shop")
	assert.NotContains(t, files["README.md"], "dop_v1_supersecret")
	assert.Contains(t, files["terraform.tfvars.json"], "dop_v1_supersecret")

	record, err := persistence.NewFileService(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "digitalocean", record.ProviderID)
	assert.True(t, record.ReverseProxyEnabled)
	assert.Equal(t, "25", record.BillingMonthlyFee)
	assert.NotEmpty(t, record.ID)
}

func TestProjectGenerator_RegenerationIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)

	_, err := NewProjectGenerator(ProjectOpts{Config: cfg, OutputDir: dir}).Run()
	require.NoError(t, err)
	first := readTree(t, dir)

	_, err = NewProjectGenerator(ProjectOpts{Config: cfg, OutputDir: dir}).Run()
	require.NoError(t, err)
	second := readTree(t, dir)

	assert.Equal(t, first, second)
}

func TestProjectGenerator_PrimaryFailureNamesArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "main.tf", "blocker"), 0755))

	_, err := NewProjectGenerator(ProjectOpts{Config: testConfig(t), OutputDir: dir}).Run()
	require.Error(t, err)

	var genErr *types.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "main.tf", genErr.Artifact)

	assert.FileExists(t, filepath.Join(dir, "variables.tf"))
	assert.NoFileExists(t, filepath.Join(dir, "outputs.tf"))
}

func TestProjectGenerator_ReadmeFailureDegrades(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "README.md", "blocker"), 0755))

	set, err := NewProjectGenerator(ProjectOpts{Config: testConfig(t), OutputDir: dir}).Run()
	require.NoError(t, err)
	require.Len(t, set.Warnings, 1)
	assert.Contains(t, set.Warnings[0], "README.md was not written")
	assert.True(t, set.Degraded())
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
}
