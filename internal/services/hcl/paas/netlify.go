package paas

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

// The netlify provider cannot create sites, so the site is looked up and only its build
// settings are managed.
func GenerateNetlifySiteData(tfResourceName string, name, teamSlug hclwrite.Tokens) *hclwrite.Block {
	siteBlock := hclwrite.NewBlock("data", []string{"netlify_site", tfResourceName})
	siteBlock.Body().SetAttributeRaw("name", name)
	siteBlock.Body().SetAttributeRaw("team_slug", teamSlug)
	return siteBlock
}

func GenerateNetlifyBuildSettings(tfResourceName, siteRef string) *hclwrite.Block {
	settingsBlock := hclwrite.NewBlock("resource", []string{"netlify_site_build_settings", tfResourceName})
	body := settingsBlock.Body()
	body.SetAttributeRaw("site_id", utils.TokensForResourceReference(siteRef+".id"))
	body.SetAttributeValue("build_command", cty.StringVal("npm run build"))
	body.SetAttributeValue("publish_directory", cty.StringVal("dist"))
	body.SetAttributeValue("production_branch", cty.StringVal("main"))
	return settingsBlock
}
