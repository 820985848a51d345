package linode

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateInstance(tfResourceName string, label cty.Value, region, instanceType, rootPassword hclwrite.Tokens) *hclwrite.Block {
	instanceBlock := hclwrite.NewBlock("resource", []string{"linode_instance", tfResourceName})
	body := instanceBlock.Body()
	body.SetAttributeValue("label", label)
	body.SetAttributeRaw("region", region)
	body.SetAttributeRaw("type", instanceType)
	body.SetAttributeValue("image", cty.StringVal("linode/ubuntu24.04"))
	body.SetAttributeRaw("root_pass", rootPassword)
	return instanceBlock
}

// GenerateFirewall drops all inbound traffic except TCP on the given ports.
func GenerateFirewall(tfResourceName string, label cty.Value, instanceRef string, ports []int) *hclwrite.Block {
	firewallBlock := hclwrite.NewBlock("resource", []string{"linode_firewall", tfResourceName})
	body := firewallBlock.Body()
	body.SetAttributeValue("label", label)
	body.SetAttributeValue("inbound_policy", cty.StringVal("DROP"))
	body.SetAttributeValue("outbound_policy", cty.StringVal("ACCEPT"))
	body.SetAttributeRaw("linodes", utils.TokensForList([]string{instanceRef + ".id"}))

	for _, port := range ports {
		body.AppendNewline()
		inbound := body.AppendNewBlock("inbound", nil).Body()
		inbound.SetAttributeValue("label", cty.StringVal("allow-tcp-"+strconv.Itoa(port)))
		inbound.SetAttributeValue("action", cty.StringVal("ACCEPT"))
		inbound.SetAttributeValue("protocol", cty.StringVal("TCP"))
		inbound.SetAttributeValue("ports", cty.StringVal(strconv.Itoa(port)))
		inbound.SetAttributeRaw("ipv4", utils.TokensForStringList([]string{"0.0.0.0/0"}))
	}

	return firewallBlock
}
