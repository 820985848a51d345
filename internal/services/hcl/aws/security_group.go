package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// GenerateSecurityGroup opens the given TCP ports to the world and allows all egress.
func GenerateSecurityGroup(tfResourceName string, name cty.Value, ingressPorts []int) *hclwrite.Block {
	securityGroupBlock := hclwrite.NewBlock("resource", []string{"aws_security_group", tfResourceName})
	body := securityGroupBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeValue("description", cty.StringVal("Web host access"))

	for _, ingressPort := range ingressPorts {
		body.AppendNewline()
		ingressBody := body.AppendNewBlock("ingress", nil).Body()
		ingressBody.SetAttributeValue("from_port", cty.NumberIntVal(int64(ingressPort)))
		ingressBody.SetAttributeValue("to_port", cty.NumberIntVal(int64(ingressPort)))
		ingressBody.SetAttributeValue("protocol", cty.StringVal("tcp"))
		ingressBody.SetAttributeValue("cidr_blocks", cty.ListVal([]cty.Value{cty.StringVal("0.0.0.0/0")}))
	}

	body.AppendNewline()
	egressBody := body.AppendNewBlock("egress", nil).Body()
	egressBody.SetAttributeValue("from_port", cty.NumberIntVal(0))
	egressBody.SetAttributeValue("to_port", cty.NumberIntVal(0))
	egressBody.SetAttributeValue("protocol", cty.StringVal("-1"))
	egressBody.SetAttributeValue("cidr_blocks", cty.ListVal([]cty.Value{cty.StringVal("0.0.0.0/0")}))

	return securityGroupBlock
}
