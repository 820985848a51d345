package vultr

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Ubuntu 24.04 x64
const ubuntuOsID = 2284

func GenerateInstance(tfResourceName string, label cty.Value, plan, region hclwrite.Tokens) *hclwrite.Block {
	instanceBlock := hclwrite.NewBlock("resource", []string{"vultr_instance", tfResourceName})
	body := instanceBlock.Body()
	body.SetAttributeRaw("plan", plan)
	body.SetAttributeRaw("region", region)
	body.SetAttributeValue("os_id", cty.NumberIntVal(ubuntuOsID))
	body.SetAttributeValue("label", label)
	body.SetAttributeValue("hostname", label)
	body.SetAttributeValue("enable_ipv6", cty.True)
	return instanceBlock
}
