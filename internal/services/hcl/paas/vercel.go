package paas

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateVercelProject(tfResourceName string, name cty.Value, framework, githubRepo hclwrite.Tokens) *hclwrite.Block {
	projectBlock := hclwrite.NewBlock("resource", []string{"vercel_project", tfResourceName})
	body := projectBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("framework", framework)
	body.SetAttributeRaw("git_repository", utils.TokensForMap(map[string]hclwrite.Tokens{
		"type": hclwrite.TokensForValue(cty.StringVal("github")),
		"repo": githubRepo,
	}))
	return projectBlock
}
