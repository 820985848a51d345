package reverse_proxy

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

//go:embed assets
var assetsFS embed.FS

const (
	TargetDir           = "reverse-proxy"
	DefaultUpstreamPort = 3000
	// terraform output holding the host's address, emitted for every self-managed provider
	hostOutput = "public_ip"
)

type ReverseProxyOpts struct {
	ProjectDir   string
	Record       *types.ProjectRecord
	UpstreamPort int
}

type ReverseProxyAssetGenerator struct {
	projectDir   string
	record       *types.ProjectRecord
	upstreamPort int
}

func NewReverseProxyAssetGenerator(opts ReverseProxyOpts) *ReverseProxyAssetGenerator {
	port := opts.UpstreamPort
	if port <= 0 {
		port = DefaultUpstreamPort
	}
	return &ReverseProxyAssetGenerator{
		projectDir:   opts.ProjectDir,
		record:       opts.Record,
		upstreamPort: port,
	}
}

// Run writes the Caddyfile and its remote setup script and returns their paths relative to the
// project directory.
func (rp *ReverseProxyAssetGenerator) Run() ([]string, error) {
	proxy, err := rp.record.ReverseProxy()
	if err != nil {
		return nil, err
	}

	slog.Info("🏁 generating reverse proxy assets", "domain", proxy.Domain)

	targetDir := filepath.Join(rp.projectDir, TargetDir)
	slog.Info("📁 creating reverse proxy directory", "directory", targetDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reverse proxy directory: %w", err)
	}

	templateData := struct {
		ProjectName  string
		Domain       string
		ContactEmail string
		WebRoot      string
		UpstreamPort int
		HostOutput   string
	}{
		ProjectName:  rp.record.ProjectName,
		Domain:       proxy.Domain,
		ContactEmail: proxy.ContactEmail,
		WebRoot:      "/var/www/" + rp.record.ProjectName,
		UpstreamPort: rp.upstreamPort,
		HostOutput:   hostOutput,
	}

	assets := []struct {
		template string
		file     string
		perm     os.FileMode
	}{
		{"assets/Caddyfile.go.tmpl", "Caddyfile", 0644},
		{"assets/setup-remote.sh.go.tmpl", "setup-remote.sh", 0755},
	}

	var written []string
	for _, a := range assets {
		content, err := utils.RenderTemplate(assetsFS, a.template, templateData)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", a.file, err)
		}

		path := filepath.Join(targetDir, a.file)
		if err := persistence.WriteFileAtomic(path, []byte(content), a.perm); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", a.file, err)
		}
		written = append(written, filepath.Join(TargetDir, a.file))
	}

	slog.Info("✅ reverse proxy assets generated", "directory", targetDir)
	return written, nil
}
