package digitalocean

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

var anywhere = []string{"0.0.0.0/0", "::/0"}

func GenerateDroplet(tfResourceName string, name, region, size, sshKeys hclwrite.Tokens) *hclwrite.Block {
	dropletBlock := hclwrite.NewBlock("resource", []string{"digitalocean_droplet", tfResourceName})
	body := dropletBlock.Body()
	body.SetAttributeValue("image", cty.StringVal("ubuntu-24-04-x64"))
	body.SetAttributeRaw("name", name)
	body.SetAttributeRaw("region", region)
	body.SetAttributeRaw("size", size)
	body.SetAttributeRaw("ssh_keys", sshKeys)
	return dropletBlock
}

// GenerateFirewall allows inbound TCP on the given ports and all outbound traffic for the droplet.
func GenerateFirewall(tfResourceName string, name cty.Value, dropletRef string, ports []int) *hclwrite.Block {
	firewallBlock := hclwrite.NewBlock("resource", []string{"digitalocean_firewall", tfResourceName})
	body := firewallBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("droplet_ids", utils.TokensForList([]string{dropletRef + ".id"}))

	for _, port := range ports {
		body.AppendNewline()
		inbound := body.AppendNewBlock("inbound_rule", nil).Body()
		inbound.SetAttributeValue("protocol", cty.StringVal("tcp"))
		inbound.SetAttributeValue("port_range", cty.StringVal(strconv.Itoa(port)))
		inbound.SetAttributeRaw("source_addresses", utils.TokensForStringList(anywhere))
	}

	for _, protocol := range []string{"tcp", "udp"} {
		body.AppendNewline()
		outbound := body.AppendNewBlock("outbound_rule", nil).Body()
		outbound.SetAttributeValue("protocol", cty.StringVal(protocol))
		outbound.SetAttributeValue("port_range", cty.StringVal("1-65535"))
		outbound.SetAttributeRaw("destination_addresses", utils.TokensForStringList(anywhere))
	}

	return firewallBlock
}
