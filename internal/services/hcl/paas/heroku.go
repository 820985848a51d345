package paas

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
)

func GenerateHerokuApp(tfResourceName string, name, region hclwrite.Tokens) *hclwrite.Block {
	appBlock := hclwrite.NewBlock("resource", []string{"heroku_app", tfResourceName})
	appBlock.Body().SetAttributeRaw("name", name)
	appBlock.Body().SetAttributeRaw("region", region)
	return appBlock
}
