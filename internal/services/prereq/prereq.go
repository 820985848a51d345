package prereq

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

// Collaborator is an external command line tool that generated artifacts or optional features
// depend on.
type Collaborator struct {
	Name     string
	Purpose  string
	Required bool
}

var (
	JQ         = Collaborator{Name: "jq", Purpose: "JSON queries over terraform output in deploy.sh", Required: true}
	GitHubCLI  = Collaborator{Name: "gh", Purpose: "repository handover"}
	Calculator = Collaborator{Name: "bc", Purpose: "decimal arithmetic in draft-invoice.sh"}
	Pandoc     = Collaborator{Name: "pandoc", Purpose: "PDF invoice export"}
	Terraform  = Collaborator{Name: "terraform", Purpose: "running the generated project"}
)

var DefaultCollaborators = []Collaborator{JQ, Terraform, GitHubCLI, Calculator, Pandoc}

type Result struct {
	Collaborator Collaborator
	Path         string
	Found        bool
}

type Report struct {
	Results []Result
}

type Checker struct {
	lookPath func(string) (string, error)
}

func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// NewCheckerWithLookPath swaps PATH resolution, typically for tests.
func NewCheckerWithLookPath(lookPath func(string) (string, error)) *Checker {
	return &Checker{lookPath: lookPath}
}

func (c *Checker) Check(collaborators []Collaborator) *Report {
	report := &Report{}
	for _, col := range collaborators {
		path, err := c.lookPath(col.Name)
		report.Results = append(report.Results, Result{Collaborator: col, Path: path, Found: err == nil})
	}
	return report
}

// Available reports whether the named tool was found. Tools that were never checked are
// reported missing.
func (r *Report) Available(name string) bool {
	for _, res := range r.Results {
		if res.Collaborator.Name == name {
			return res.Found
		}
	}
	return false
}

func (r *Report) MissingRequired() []Collaborator {
	var missing []Collaborator
	for _, res := range r.Results {
		if !res.Found && res.Collaborator.Required {
			missing = append(missing, res.Collaborator)
		}
	}
	return missing
}

func (r *Report) MissingOptional() []Collaborator {
	var missing []Collaborator
	for _, res := range r.Results {
		if !res.Found && !res.Collaborator.Required {
			missing = append(missing, res.Collaborator)
		}
	}
	return missing
}

// Err returns a FatalSetupError when a required tool is missing.
func (r *Report) Err() error {
	missing := r.MissingRequired()
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, len(missing))
	for i, m := range missing {
		names[i] = m.Name
	}
	return &types.FatalSetupError{
		Reason: "install " + strings.Join(names, ", ") + " and retry",
		Err:    types.ErrMissingCollaborator,
	}
}

// Print writes one [OK]/[FAILED]/[MISSING] line per tool.
func (r *Report) Print(w io.Writer) {
	ok := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()
	missing := color.New(color.FgYellow).SprintFunc()

	for _, res := range r.Results {
		switch {
		case res.Found:
			fmt.Fprintf(w, "%s %s (%s)\n", ok("[OK]"), res.Collaborator.Name, res.Path)
		case res.Collaborator.Required:
			fmt.Fprintf(w, "%s %s is required for %s\n", failed("[FAILED]"), res.Collaborator.Name, res.Collaborator.Purpose)
		default:
			fmt.Fprintf(w, "%s %s not found, %s will be unavailable\n", missing("[MISSING]"), res.Collaborator.Name, res.Collaborator.Purpose)
		}
	}
}
