package digitalocean

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

func GenerateApp(tfResourceName string, name cty.Value, region, githubRepo hclwrite.Tokens) *hclwrite.Block {
	appBlock := hclwrite.NewBlock("resource", []string{"digitalocean_app", tfResourceName})
	specBody := appBlock.Body().AppendNewBlock("spec", nil).Body()
	specBody.SetAttributeValue("name", name)
	specBody.SetAttributeRaw("region", region)
	specBody.AppendNewline()

	serviceBody := specBody.AppendNewBlock("service", nil).Body()
	serviceBody.SetAttributeValue("name", cty.StringVal("web"))
	serviceBody.SetAttributeValue("instance_count", cty.NumberIntVal(1))
	serviceBody.SetAttributeValue("instance_size_slug", cty.StringVal("apps-s-1vcpu-0.5gb"))
	serviceBody.AppendNewline()

	githubBody := serviceBody.AppendNewBlock("github", nil).Body()
	githubBody.SetAttributeRaw("repo", githubRepo)
	githubBody.SetAttributeValue("branch", cty.StringVal("main"))
	githubBody.SetAttributeValue("deploy_on_push", cty.True)

	return appBlock
}
