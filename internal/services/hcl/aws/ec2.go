package aws

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

const canonicalOwnerID = "099720109477"

// GenerateAmiDataResource looks up the most recent image matching the filters. Filters are
// emitted in name order.
func GenerateAmiDataResource(tfResourceName string, owners []string, mostRecent bool, filters map[string]string) *hclwrite.Block {
	resourceBlock := hclwrite.NewBlock("data", []string{"aws_ami", tfResourceName})
	body := resourceBlock.Body()

	body.SetAttributeValue("most_recent", cty.BoolVal(mostRecent))
	body.SetAttributeRaw("owners", utils.TokensForStringList(owners))

	for _, filterName := range utils.SortedKeys(filters) {
		filterBody := body.AppendNewBlock("filter", nil).Body()
		filterBody.SetAttributeValue("name", cty.StringVal(filterName))
		filterBody.SetAttributeValue("values", cty.ListVal([]cty.Value{cty.StringVal(filters[filterName])}))
	}

	return resourceBlock
}

func GenerateUbuntuAmiDataResource(tfResourceName string) *hclwrite.Block {
	return GenerateAmiDataResource(tfResourceName, []string{canonicalOwnerID}, true, map[string]string{
		"name":                "ubuntu/images/hvm-ssd-gp3/ubuntu-noble-24.04-amd64-server-*",
		"virtualization-type": "hvm",
	})
}

func GenerateEc2InstanceResource(tfResourceName, amiIdRef string, instanceType, keyName hclwrite.Tokens, securityGroupIdRefs []string, tags map[string]hclwrite.Tokens) *hclwrite.Block {
	resourceBlock := hclwrite.NewBlock("resource", []string{"aws_instance", tfResourceName})
	instanceBody := resourceBlock.Body()

	instanceBody.SetAttributeRaw("ami", utils.TokensForResourceReference(amiIdRef))
	instanceBody.SetAttributeRaw("instance_type", instanceType)
	instanceBody.SetAttributeRaw("key_name", keyName)
	instanceBody.SetAttributeRaw("vpc_security_group_ids", utils.TokensForList(securityGroupIdRefs))
	instanceBody.SetAttributeValue("associate_public_ip_address", cty.True)

	if len(tags) > 0 {
		instanceBody.AppendNewline()
		instanceBody.SetAttributeRaw("tags", utils.TokensForMap(tags))
	}

	return resourceBlock
}
