package gcp

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateCloudRunService(tfResourceName string, name cty.Value, location, image hclwrite.Tokens) *hclwrite.Block {
	serviceBlock := hclwrite.NewBlock("resource", []string{"google_cloud_run_v2_service", tfResourceName})
	body := serviceBlock.Body()
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("location", location)
	body.SetAttributeValue("deletion_protection", cty.False)
	body.AppendNewline()

	templateBody := body.AppendNewBlock("template", nil).Body()
	containersBody := templateBody.AppendNewBlock("containers", nil).Body()
	containersBody.SetAttributeRaw("image", image)

	return serviceBlock
}

// GenerateCloudRunPublicInvoker lets unauthenticated users call the service.
func GenerateCloudRunPublicInvoker(tfResourceName, serviceRef string) *hclwrite.Block {
	memberBlock := hclwrite.NewBlock("resource", []string{"google_cloud_run_v2_service_iam_member", tfResourceName})
	body := memberBlock.Body()
	body.SetAttributeRaw("name", utils.TokensForResourceReference(serviceRef+".name"))
	body.SetAttributeRaw("location", utils.TokensForResourceReference(serviceRef+".location"))
	body.SetAttributeValue("role", cty.StringVal("roles/run.invoker"))
	body.SetAttributeValue("member", cty.StringVal("allUsers"))

	return memberBlock
}
