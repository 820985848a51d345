package features

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchpad-ops/tfscaffold/internal/generators/create_asset/billing"
	"github.com/launchpad-ops/tfscaffold/internal/generators/create_asset/repo_handover"
	"github.com/launchpad-ops/tfscaffold/internal/generators/create_asset/reverse_proxy"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

const (
	ReverseProxy = "reverse-proxy"
	RepoHandover = "repo-handover"
	Billing      = "billing"
)

type FeatureOpts struct {
	ProjectDir   string
	Record       *types.ProjectRecord
	UpstreamPort int
	// optional, handover verification is skipped when nil
	Verifier repo_handover.HandoverVerifier
}

// Feature is one optional generator bound to a project.
type Feature struct {
	Name string
	Run  func(ctx context.Context) (files []string, warnings []string, err error)
}

// Enabled returns the generators whose feature is switched on in the record, in a fixed order.
func Enabled(opts FeatureOpts) []Feature {
	var enabled []Feature
	if opts.Record.ReverseProxyEnabled {
		enabled = append(enabled, NewFeature(ReverseProxy, opts))
	}
	if opts.Record.RepoHandoverEnabled {
		enabled = append(enabled, NewFeature(RepoHandover, opts))
	}
	if opts.Record.BillingEnabled {
		enabled = append(enabled, NewFeature(Billing, opts))
	}
	return enabled
}

// NewFeature binds the named generator to a project. Unknown names yield a feature whose Run
// fails.
func NewFeature(name string, opts FeatureOpts) Feature {
	switch name {
	case ReverseProxy:
		return Feature{Name: name, Run: func(context.Context) ([]string, []string, error) {
			files, err := reverse_proxy.NewReverseProxyAssetGenerator(reverse_proxy.ReverseProxyOpts{
				ProjectDir:   opts.ProjectDir,
				Record:       opts.Record,
				UpstreamPort: opts.UpstreamPort,
			}).Run()
			return files, nil, err
		}}
	case RepoHandover:
		return Feature{Name: name, Run: func(ctx context.Context) ([]string, []string, error) {
			gen := repo_handover.NewRepoHandoverAssetGenerator(repo_handover.RepoHandoverOpts{
				ProjectDir: opts.ProjectDir,
				Record:     opts.Record,
				Verifier:   opts.Verifier,
			})
			files, err := gen.Run(ctx)
			return files, gen.Warnings(), err
		}}
	case Billing:
		return Feature{Name: name, Run: func(context.Context) ([]string, []string, error) {
			files, err := billing.NewBillingAssetGenerator(billing.BillingOpts{
				ProjectDir: opts.ProjectDir,
				Record:     opts.Record,
			}).Run()
			return files, nil, err
		}}
	}
	return Feature{Name: name, Run: func(context.Context) ([]string, []string, error) {
		return nil, nil, fmt.Errorf("unknown feature %q", name)
	}}
}

// Run executes the features one after another. A failing feature never stops the others and
// is recorded in set.Failures.
func Run(ctx context.Context, set *types.GeneratedArtifactSet, features []Feature) {
	for _, f := range features {
		files, warnings, err := f.Run(ctx)
		for _, file := range files {
			set.Add(file)
		}
		for _, w := range warnings {
			set.Warn(w)
		}
		if err != nil {
			slog.Warn("⚠️ optional feature failed", "feature", f.Name, "error", err)
			set.Failures = append(set.Failures, types.FeatureFailure{Feature: f.Name, Err: err})
		}
	}
}
