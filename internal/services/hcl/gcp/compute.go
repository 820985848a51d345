package gcp

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

const defaultImage = "debian-cloud/debian-12"

func GenerateFirewall(tfResourceName string, name cty.Value, ports []string, targetTag cty.Value) *hclwrite.Block {
	firewallBlock := hclwrite.NewBlock("resource", []string{"google_compute_firewall", tfResourceName})
	body := firewallBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeValue("network", cty.StringVal("default"))
	body.SetAttributeRaw("source_ranges", utils.TokensForStringList([]string{"0.0.0.0/0"}))
	body.SetAttributeValue("target_tags", cty.ListVal([]cty.Value{targetTag}))
	body.AppendNewline()

	allowBody := body.AppendNewBlock("allow", nil).Body()
	allowBody.SetAttributeValue("protocol", cty.StringVal("tcp"))
	allowBody.SetAttributeRaw("ports", utils.TokensForStringList(ports))

	return firewallBlock
}

func GenerateComputeInstance(tfResourceName string, name cty.Value, machineType, zone hclwrite.Tokens, tag cty.Value) *hclwrite.Block {
	instanceBlock := hclwrite.NewBlock("resource", []string{"google_compute_instance", tfResourceName})
	body := instanceBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("machine_type", machineType)
	body.SetAttributeRaw("zone", zone)
	body.SetAttributeValue("tags", cty.ListVal([]cty.Value{tag}))
	body.AppendNewline()

	bootDiskBody := body.AppendNewBlock("boot_disk", nil).Body()
	initBody := bootDiskBody.AppendNewBlock("initialize_params", nil).Body()
	initBody.SetAttributeValue("image", cty.StringVal(defaultImage))
	body.AppendNewline()

	nicBody := body.AppendNewBlock("network_interface", nil).Body()
	nicBody.SetAttributeValue("network", cty.StringVal("default"))
	// an empty access_config assigns an ephemeral public IP
	nicBody.AppendNewBlock("access_config", nil)

	return instanceBlock
}
