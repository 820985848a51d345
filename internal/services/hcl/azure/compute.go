package azure

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateLinuxVirtualMachine(name cty.Value, size, adminUsername, sshPublicKeyPath hclwrite.Tokens) *hclwrite.Block {
	vmBlock := hclwrite.NewBlock("resource", []string{"azurerm_linux_virtual_machine", "web"})
	body := vmBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.SetAttributeRaw("size", size)
	body.SetAttributeRaw("admin_username", adminUsername)
	body.SetAttributeRaw("network_interface_ids", utils.TokensForList([]string{"azurerm_network_interface.web.id"}))
	body.AppendNewline()

	keyBody := body.AppendNewBlock("admin_ssh_key", nil).Body()
	keyBody.SetAttributeRaw("username", adminUsername)
	keyBody.SetAttributeRaw("public_key", utils.TokensForFunctionCall("file", sshPublicKeyPath))
	body.AppendNewline()

	diskBody := body.AppendNewBlock("os_disk", nil).Body()
	diskBody.SetAttributeValue("caching", cty.StringVal("ReadWrite"))
	diskBody.SetAttributeValue("storage_account_type", cty.StringVal("Standard_LRS"))
	body.AppendNewline()

	imageBody := body.AppendNewBlock("source_image_reference", nil).Body()
	imageBody.SetAttributeValue("publisher", cty.StringVal("Canonical"))
	imageBody.SetAttributeValue("offer", cty.StringVal("ubuntu-24_04-lts"))
	imageBody.SetAttributeValue("sku", cty.StringVal("server"))
	imageBody.SetAttributeValue("version", cty.StringVal("latest"))

	return vmBlock
}

func GenerateServicePlan(name cty.Value, sku hclwrite.Tokens) *hclwrite.Block {
	planBlock := hclwrite.NewBlock("resource", []string{"azurerm_service_plan", "main"})
	body := planBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.SetAttributeValue("os_type", cty.StringVal("Linux"))
	body.SetAttributeRaw("sku_name", sku)
	return planBlock
}

func GenerateLinuxWebApp(name cty.Value, image hclwrite.Tokens) *hclwrite.Block {
	appBlock := hclwrite.NewBlock("resource", []string{"azurerm_linux_web_app", "app"})
	body := appBlock.Body()
	body.SetAttributeValue("name", name)
	setGroupAndLocation(body)
	body.SetAttributeRaw("service_plan_id", utils.TokensForResourceReference("azurerm_service_plan.main.id"))
	body.AppendNewline()

	siteBody := body.AppendNewBlock("site_config", nil).Body()
	stackBody := siteBody.AppendNewBlock("application_stack", nil).Body()
	stackBody.SetAttributeRaw("docker_image_name", image)
	stackBody.SetAttributeValue("docker_registry_url", cty.StringVal("https://index.docker.io"))

	return appBlock
}
