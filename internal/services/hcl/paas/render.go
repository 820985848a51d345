package paas

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

// GenerateRenderWebService builds a native node runtime service from a Git repository.
func GenerateRenderWebService(tfResourceName string, name cty.Value, plan, region, repoURL hclwrite.Tokens) *hclwrite.Block {
	serviceBlock := hclwrite.NewBlock("resource", []string{"render_web_service", tfResourceName})
	body := serviceBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("plan", plan)
	body.SetAttributeRaw("region", region)
	body.SetAttributeValue("start_command", cty.StringVal("npm start"))
	body.AppendNewline()

	nativeRuntime := utils.TokensForMap(map[string]hclwrite.Tokens{
		"auto_deploy":   hclwrite.TokensForValue(cty.True),
		"branch":        hclwrite.TokensForValue(cty.StringVal("main")),
		"build_command": hclwrite.TokensForValue(cty.StringVal("npm install")),
		"repo_url":      repoURL,
		"runtime":       hclwrite.TokensForValue(cty.StringVal("node")),
	})
	body.SetAttributeRaw("runtime_source", utils.TokensForMap(map[string]hclwrite.Tokens{
		"native_runtime": nativeRuntime,
	}))

	return serviceBlock
}
