package repo_handover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-ops/tfscaffold/internal/services/github"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

type fakeVerifier struct {
	check *github.HandoverCheck
	err   error
}

func (f fakeVerifier) VerifyHandover(context.Context, types.RepoHandoverConfig) (*github.HandoverCheck, error) {
	return f.check, f.err
}

func handoverRecord() *types.ProjectRecord {
	return &types.ProjectRecord{
		ProjectName:         "shop",
		ProviderID:          "aws",
		ProviderName:        "Amazon Web Services",
		HostingModel:        "self-managed",
		StateBackend:        "remote",
		BackendType:         "s3",
		RepoHandoverEnabled: true,
		HandoverSourceOwner: "agency",
		HandoverSourceRepo:  "shop",
		HandoverDestOwner:   "client-co",
		HandoverDestRepo:    "shop-infra",
		HandoverRole:        "maintain",
	}
}

func TestRepoHandoverAssetGenerator_Run(t *testing.T) {
	tests := []struct {
		name         string
		verifier     HandoverVerifier
		wantWarnings int
		wantInDoc    []string
	}{
		{
			name:      "without verification",
			wantInDoc: []string{"`agency/shop`", "`client-co/shop-infra`", "`s3` state backend"},
		},
		{
			name: "verified",
			verifier: fakeVerifier{check: &github.HandoverCheck{
				SourceExists:  true,
				DestOwnerType: "Organization",
				Warnings:      []string{"destination repository client-co/shop-infra already exists, the push option will fail"},
			}},
			wantWarnings: 1,
			wantInDoc:    []string{"Organization", "Verification notes", "already exists"},
		},
		{
			name:         "verification error is a warning",
			verifier:     fakeVerifier{err: errors.New("connection refused")},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			gen := NewRepoHandoverAssetGenerator(RepoHandoverOpts{ProjectDir: dir, Record: handoverRecord(), Verifier: tt.verifier})

			files, err := gen.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{filepath.Join("handover", "handover.sh"), filepath.Join("handover", "CLIENT_HANDOFF.md")}, files)
			assert.Len(t, gen.Warnings(), tt.wantWarnings)

			doc, err := os.ReadFile(filepath.Join(dir, "handover", "CLIENT_HANDOFF.md"))
			require.NoError(t, err)
			for _, want := range tt.wantInDoc {
				assert.Contains(t, string(doc), want)
			}
		})
	}
}

func TestRepoHandoverAssetGenerator_Script(t *testing.T) {
	dir := t.TempDir()
	_, err := NewRepoHandoverAssetGenerator(RepoHandoverOpts{ProjectDir: dir, Record: handoverRecord()}).Run(context.Background())
	require.NoError(t, err)

	script, err := os.ReadFile(filepath.Join(dir, "handover", "handover.sh"))
	require.NoError(t, err)
	for _, want := range []string{
		"SOURCE=agency/shop",
		"ROLE=maintain",
		`gh repo create "$DEST_OWNER/$DEST_REPO" --private`,
		`repos/$SOURCE/collaborators/$DEST_OWNER`,
		`repos/$SOURCE/transfer`,
		"push) push_to_new_repo ;;",
	} {
		assert.Contains(t, string(script), want)
	}

	info, err := os.Stat(filepath.Join(dir, "handover", "handover.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestRepoHandoverAssetGenerator_Disabled(t *testing.T) {
	_, err := NewRepoHandoverAssetGenerator(RepoHandoverOpts{ProjectDir: t.TempDir(), Record: &types.ProjectRecord{ProjectName: "shop"}}).Run(context.Background())
	assert.ErrorIs(t, err, types.ErrFeatureDisabled)
}

func TestNewClientHandoff_Sections(t *testing.T) {
	billed := handoverRecord()
	billed.BillingEnabled = true
	billed.BillingModel = string(types.BillingHybrid)
	billed.BillingMonthlyFee = "25"
	billed.BillingMarkupPercent = "5"
	billed.BillingCurrency = "usd"

	tests := []struct {
		name      string
		record    *types.ProjectRecord
		wantIn    []string
		wantNotIn []string
	}{
		{
			name:      "billing disabled",
			record:    handoverRecord(),
			wantIn:    []string{"## Support", "Technical contact", "Emergency line"},
			wantNotIn: []string{"Billing terms"},
		},
		{
			name:   "billing enabled",
			record: billed,
			wantIn: []string{
				"## Billing terms",
				"25.00 + 5% of infra cost",
				"| Model | hybrid |",
				"| Monthly fee | 25.00 USD |",
				"| Currency | USD |",
				"## Support",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handover, err := tt.record.RepoHandover()
			require.NoError(t, err)

			doc := NewClientHandoff(tt.record, *handover, nil).String()
			for _, want := range tt.wantIn {
				assert.Contains(t, doc, want)
			}
			for _, unwanted := range tt.wantNotIn {
				assert.NotContains(t, doc, unwanted)
			}
		})
	}
}
