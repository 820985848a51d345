package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/resolver"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

const projectSlugToken = "PROJECT_SLUG"

var webPorts = []int{22, 80, 443}

// templateContext is what a resource template sees of the project configuration.
type templateContext struct {
	projectName string
	variables   *types.ResolvedVariables
	bindings    resolver.Bindings
}

func newTemplateContext(cfg *types.ProjectConfiguration) *templateContext {
	bindings := resolver.NewBindings(cfg.ProjectName, cfg.Variables.Map())
	// cloud resource names are usually restricted to lowercase DNS labels
	bindings[projectSlugToken] = strings.ToLower(strings.ReplaceAll(cfg.ProjectName, "_", "-"))

	return &templateContext{
		projectName: cfg.ProjectName,
		variables:   cfg.Variables,
		bindings:    bindings,
	}
}

// ref points at var.<name> when the variable was resolved and inlines fallback otherwise, so a
// trimmed custom descriptor still yields valid terraform.
func (tc *templateContext) ref(name, fallback string) hclwrite.Tokens {
	if tc.variables.Has(name) {
		return utils.TokensForVarReference(name)
	}
	return hclwrite.TokensForValue(cty.StringVal(fallback))
}

// value renders a name template such as "{{PROJECT_SLUG}}-web".
func (tc *templateContext) value(template string) cty.Value {
	out, _ := resolver.Substitute(template, tc.bindings)
	return cty.StringVal(out)
}

func (tc *templateContext) has(name string) bool {
	return tc.variables.Has(name)
}

func appendBlocks(body *hclwrite.Body, blocks ...*hclwrite.Block) {
	for i, block := range blocks {
		if i > 0 {
			body.AppendNewline()
		}
		body.AppendBlock(block)
	}
}
