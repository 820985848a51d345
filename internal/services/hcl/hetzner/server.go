package hetzner

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateFirewall(tfResourceName string, name cty.Value, ports []int) *hclwrite.Block {
	firewallBlock := hclwrite.NewBlock("resource", []string{"hcloud_firewall", tfResourceName})
	body := firewallBlock.Body()
	body.SetAttributeValue("name", name)

	for _, port := range ports {
		body.AppendNewline()
		rule := body.AppendNewBlock("rule", nil).Body()
		rule.SetAttributeValue("direction", cty.StringVal("in"))
		rule.SetAttributeValue("protocol", cty.StringVal("tcp"))
		rule.SetAttributeValue("port", cty.StringVal(strconv.Itoa(port)))
		rule.SetAttributeRaw("source_ips", utils.TokensForStringList([]string{"0.0.0.0/0", "::/0"}))
	}

	return firewallBlock
}

func GenerateServer(tfResourceName string, name, serverType, location hclwrite.Tokens, firewallRef string) *hclwrite.Block {
	serverBlock := hclwrite.NewBlock("resource", []string{"hcloud_server", tfResourceName})
	body := serverBlock.Body()
	body.SetAttributeRaw("name", name)
	body.SetAttributeRaw("server_type", serverType)
	body.SetAttributeValue("image", cty.StringVal("ubuntu-24.04"))
	body.SetAttributeRaw("location", location)
	body.SetAttributeRaw("firewall_ids", utils.TokensForList([]string{firewallRef + ".id"}))
	return serverBlock
}
