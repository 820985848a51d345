package aws

import (
	"strconv"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

func GenerateAppRunnerService(tfResourceName string, serviceName cty.Value, image hclwrite.Tokens, port int) *hclwrite.Block {
	serviceBlock := hclwrite.NewBlock("resource", []string{"aws_apprunner_service", tfResourceName})
	body := serviceBlock.Body()
	body.SetAttributeValue("service_name", serviceName)
	body.AppendNewline()

	sourceBody := body.AppendNewBlock("source_configuration", nil).Body()
	sourceBody.SetAttributeValue("auto_deployments_enabled", cty.False)

	imageBody := sourceBody.AppendNewBlock("image_repository", nil).Body()
	imageBody.SetAttributeRaw("image_identifier", image)
	imageBody.SetAttributeValue("image_repository_type", cty.StringVal("ECR_PUBLIC"))

	imageConfigBody := imageBody.AppendNewBlock("image_configuration", nil).Body()
	imageConfigBody.SetAttributeValue("port", cty.StringVal(strconv.Itoa(port)))

	return serviceBlock
}
