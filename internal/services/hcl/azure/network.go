package azure

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

const resourceGroupRef = "azurerm_resource_group.main"

func setGroupAndLocation(body *hclwrite.Body) {
	body.SetAttributeRaw("resource_group_name", utils.TokensForResourceReference(resourceGroupRef+".name"))
	body.SetAttributeRaw("location", utils.TokensForResourceReference(resourceGroupRef+".location"))
}

func GenerateResourceGroup(name cty.Value, location hclwrite.Tokens) *hclwrite.Block {
	groupBlock := hclwrite.NewBlock("resource", []string{"azurerm_resource_group", "main"})
	groupBlock.Body().SetAttributeValue("name", name)
	groupBlock.Body().SetAttributeRaw("location", location)
	return groupBlock
}

func GenerateVirtualNetwork(name cty.Value) *hclwrite.Block {
	vnetBlock := hclwrite.NewBlock("resource", []string{"azurerm_virtual_network", "main"})
	body := vnetBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.SetAttributeRaw("address_space", utils.TokensForStringList([]string{"10.0.0.0/16"}))
	return vnetBlock
}

func GenerateSubnet(name cty.Value) *hclwrite.Block {
	subnetBlock := hclwrite.NewBlock("resource", []string{"azurerm_subnet", "main"})
	body := subnetBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("resource_group_name", utils.TokensForResourceReference(resourceGroupRef+".name"))
	body.SetAttributeRaw("virtual_network_name", utils.TokensForResourceReference("azurerm_virtual_network.main.name"))
	body.SetAttributeRaw("address_prefixes", utils.TokensForStringList([]string{"10.0.1.0/24"}))
	return subnetBlock
}

func GeneratePublicIP(name cty.Value) *hclwrite.Block {
	ipBlock := hclwrite.NewBlock("resource", []string{"azurerm_public_ip", "web"})
	body := ipBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.SetAttributeValue("allocation_method", cty.StringVal("Static"))
	body.SetAttributeValue("sku", cty.StringVal("Standard"))
	return ipBlock
}

// GenerateNetworkSecurityGroup allows inbound TCP on each port, priorities starting at 100.
func GenerateNetworkSecurityGroup(name cty.Value, ports []int) *hclwrite.Block {
	nsgBlock := hclwrite.NewBlock("resource", []string{"azurerm_network_security_group", "web"})
	body := nsgBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)

	for i, port := range ports {
		body.AppendNewline()
		ruleBody := body.AppendNewBlock("security_rule", nil).Body()
		ruleBody.SetAttributeValue("name", cty.StringVal("allow-tcp-"+strconv.Itoa(port)))
		ruleBody.SetAttributeValue("priority", cty.NumberIntVal(int64(100+i*10)))
		ruleBody.SetAttributeValue("direction", cty.StringVal("Inbound"))
		ruleBody.SetAttributeValue("access", cty.StringVal("Allow"))
		ruleBody.SetAttributeValue("protocol", cty.StringVal("Tcp"))
		ruleBody.SetAttributeValue("source_port_range", cty.StringVal("*"))
		ruleBody.SetAttributeValue("destination_port_range", cty.StringVal(strconv.Itoa(port)))
		ruleBody.SetAttributeValue("source_address_prefix", cty.StringVal("*"))
		ruleBody.SetAttributeValue("destination_address_prefix", cty.StringVal("*"))
	}

	return nsgBlock
}

func GenerateNetworkInterface(name cty.Value) *hclwrite.Block {
	nicBlock := hclwrite.NewBlock("resource", []string{"azurerm_network_interface", "web"})
	body := nicBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.AppendNewline()

	ipBody := body.AppendNewBlock("ip_configuration", nil).Body()
	ipBody.SetAttributeValue("name", cty.StringVal("internal"))
	ipBody.SetAttributeRaw("subnet_id", utils.TokensForResourceReference("azurerm_subnet.main.id"))
	ipBody.SetAttributeValue("private_ip_address_allocation", cty.StringVal("Dynamic"))
	ipBody.SetAttributeRaw("public_ip_address_id", utils.TokensForResourceReference("azurerm_public_ip.web.id"))

	return nicBlock
}

func GenerateSecurityGroupAssociation() *hclwrite.Block {
	assocBlock := hclwrite.NewBlock("resource", []string{"azurerm_network_interface_security_group_association", "web"})
	body := assocBlock.Body()
	body.SetAttributeRaw("network_interface_id", utils.TokensForResourceReference("azurerm_network_interface.web.id"))
	body.SetAttributeRaw("network_security_group_id", utils.TokensForResourceReference("azurerm_network_security_group.web.id"))
	return assocBlock
}
