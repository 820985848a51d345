package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/launchpad-ops/tfscaffold/internal/types"
)

var ErrNoToken = errors.New("no GitHub token provided")

// HandoverCheck is the outcome of verifying a handover plan against the GitHub API.
type HandoverCheck struct {
	SourceExists  bool
	SourcePrivate bool
	DestOwnerType string
	DestRepoTaken bool
	Warnings      []string
}

type Verifier struct {
	client *gh.Client
}

func NewVerifier(ctx context.Context, token string) (*Verifier, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Verifier{client: gh.NewClient(oauth2.NewClient(ctx, ts))}, nil
}

// NewVerifierWithClient is used by tests to point at an httptest server.
func NewVerifierWithClient(client *gh.Client) *Verifier {
	return &Verifier{client: client}
}

// VerifyHandover checks that the source repository is reachable, reports whether the
// destination owner is a user or an organization and whether the destination name is free.
// The three lookups run in parallel and are joined before returning. Only transport errors are
// returned; anything the API reports becomes a warning, listed in lookup order.
func (v *Verifier) VerifyHandover(ctx context.Context, cfg types.RepoHandoverConfig) (*HandoverCheck, error) {
	var (
		source, dest                    *gh.Repository
		owner                           *gh.User
		sourceResp, ownerResp, destResp *gh.Response
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, sourceResp, err = v.client.Repositories.Get(ctx, cfg.SourceOwner, cfg.SourceRepo)
		if err != nil && !isNotFound(sourceResp) {
			return fmt.Errorf("failed to get repository %s: %w", cfg.SourceSlug(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		owner, ownerResp, err = v.client.Users.Get(ctx, cfg.DestOwner)
		if err != nil && !isNotFound(ownerResp) {
			return fmt.Errorf("failed to get owner %s: %w", cfg.DestOwner, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		dest, destResp, err = v.client.Repositories.Get(ctx, cfg.DestOwner, cfg.DestRepo)
		if err != nil && !isNotFound(destResp) {
			return fmt.Errorf("failed to get repository %s: %w", cfg.DestSlug(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	check := &HandoverCheck{}

	if isNotFound(sourceResp) {
		check.Warnings = append(check.Warnings, fmt.Sprintf("source repository %s not found or not accessible with this token", cfg.SourceSlug()))
	} else {
		check.SourceExists = true
		check.SourcePrivate = source.GetPrivate()
	}

	if isNotFound(ownerResp) {
		check.Warnings = append(check.Warnings, fmt.Sprintf("destination owner %s does not exist", cfg.DestOwner))
	} else {
		check.DestOwnerType = owner.GetType()
	}

	if !isNotFound(destResp) && dest != nil {
		check.DestRepoTaken = true
		check.Warnings = append(check.Warnings, fmt.Sprintf("destination repository %s already exists, the push option will fail", cfg.DestSlug()))
	}

	return check, nil
}

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
