package paas

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

func GenerateSupabaseProject(tfResourceName string, name cty.Value, organizationID, databasePassword, region hclwrite.Tokens) *hclwrite.Block {
	projectBlock := hclwrite.NewBlock("resource", []string{"supabase_project", tfResourceName})
	body := projectBlock.Body()
	body.SetAttributeRaw("organization_id", organizationID)
	body.SetAttributeValue("name", name)
	body.SetAttributeRaw("database_password", databasePassword)
	body.SetAttributeRaw("region", region)
	body.AppendNewline()

	// the API never returns the password, so drift on it is ignored
	lifecycleBody := body.AppendNewBlock("lifecycle", nil).Body()
	lifecycleBody.SetAttributeRaw("ignore_changes", utils.TokensForList([]string{"database_password"}))

	return projectBlock
}
