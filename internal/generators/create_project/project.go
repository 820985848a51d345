package create_project

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/launchpad-ops/tfscaffold/internal/services/hcl"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

//go:embed assets
var assetsFS embed.FS

const PlanFile = "tfplan"

type ProjectOpts struct {
	Config    *types.ProjectConfiguration
	OutputDir string
}

type ProjectGenerator struct {
	cfg           *types.ProjectConfiguration
	outputDir     string
	hclService    *hcl.ProjectHCLService
	recordService persistence.Service
}

func NewProjectGenerator(opts ProjectOpts) *ProjectGenerator {
	return &ProjectGenerator{
		cfg:           opts.Config,
		outputDir:     opts.OutputDir,
		hclService:    hcl.NewProjectHCLService(),
		recordService: persistence.NewFileService(opts.OutputDir),
	}
}

type artifact struct {
	name    string
	perm    os.FileMode
	content string
}

// Run writes the full project. A failure on a primary artifact stops the run with a
// GenerationError naming it; files written before it stay on disk. README.md and .gitignore
// only produce warnings.
func (pg *ProjectGenerator) Run() (*types.GeneratedArtifactSet, error) {
	slog.Info("🏁 generating terraform project", "project", pg.cfg.ProjectName, "provider", pg.cfg.Provider.ID, "hosting", pg.cfg.HostingModel)
	set := &types.GeneratedArtifactSet{Dir: pg.outputDir}

	slog.Info("📁 creating project directory", "directory", pg.outputDir)
	if err := os.MkdirAll(pg.outputDir, 0755); err != nil {
		return set, &types.GenerationError{Artifact: pg.outputDir, Err: err}
	}

	files, warnings, err := pg.hclService.GenerateTerraformFiles(pg.cfg)
	for _, w := range warnings {
		slog.Warn("⚠️ " + w)
		set.Warn(w)
	}
	if err != nil {
		return set, err
	}

	deployScript, err := pg.renderAsset("deploy.sh.go.tmpl")
	if err != nil {
		return set, &types.GenerationError{Artifact: "deploy.sh", Err: err}
	}

	primary := []artifact{
		{name: "versions.tf", perm: 0644, content: files.VersionsTf},
		{name: "provider.tf", perm: 0644, content: files.ProviderTf},
		{name: "backend.tf", perm: 0644, content: files.BackendTf},
		{name: "variables.tf", perm: 0644, content: files.VariablesTf},
		{name: "terraform.tfvars.json", perm: 0600, content: files.TfvarsJSON},
		{name: "main.tf", perm: 0644, content: files.MainTf},
		{name: "outputs.tf", perm: 0644, content: files.OutputsTf},
		{name: "deploy.sh", perm: 0755, content: deployScript},
	}
	for _, a := range primary {
		if err := pg.write(set, a); err != nil {
			return set, err
		}
	}

	if err := pg.recordService.Save(types.NewProjectRecord("", pg.cfg)); err != nil {
		return set, &types.GenerationError{Artifact: filepath.Join(types.RecordDirName, types.RecordFileName), Err: err}
	}
	set.Add(filepath.Join(types.RecordDirName, types.RecordFileName))

	pg.writeOptional(set, "README.md", func() (string, error) {
		return NewReadme(pg.cfg).String(), nil
	})
	pg.writeOptional(set, ".gitignore", func() (string, error) {
		return pg.renderAsset("gitignore.go.tmpl")
	})

	slog.Info("✅ terraform project generated", "directory", pg.outputDir, "files", len(set.Files))
	return set, nil
}

func (pg *ProjectGenerator) write(set *types.GeneratedArtifactSet, a artifact) error {
	path := filepath.Join(pg.outputDir, a.name)
	if err := persistence.WriteFileAtomic(path, []byte(a.content), a.perm); err != nil {
		return &types.GenerationError{Artifact: a.name, Err: err}
	}
	slog.Debug("wrote artifact", "file", path)
	set.Add(a.name)
	return nil
}

func (pg *ProjectGenerator) writeOptional(set *types.GeneratedArtifactSet, name string, render func() (string, error)) {
	content, err := render()
	if err == nil {
		err = pg.write(set, artifact{name: name, perm: 0644, content: content})
	}
	if err != nil {
		var genErr *types.GenerationError
		if errors.As(err, &genErr) {
			err = genErr.Err
		}
		msg := fmt.Sprintf("%s was not written: %v", name, err)
		slog.Warn("⚠️ " + msg)
		set.Warn(msg)
	}
}

func (pg *ProjectGenerator) renderAsset(name string) (string, error) {
	data := struct {
		ProjectName  string
		ProviderName string
		HostingModel string
		PlanFile     string
	}{
		ProjectName:  pg.cfg.ProjectName,
		ProviderName: pg.cfg.Provider.Name,
		HostingModel: string(pg.cfg.HostingModel),
		PlanFile:     PlanFile,
	}
	return utils.RenderTemplate(assetsFS, "assets/"+name, data)
}
