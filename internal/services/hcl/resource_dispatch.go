package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/aws"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/azure"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/digitalocean"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/gcp"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/hetzner"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/linode"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/paas"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl/vultr"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

type dispatchKey struct {
	providerID string
	hosting    types.HostingModel
}

type resourceTemplate func(body *hclwrite.Body, tc *templateContext)

var resourceTemplates = map[dispatchKey]resourceTemplate{
	{"aws", types.HostingSelfManaged}:              awsSelfManaged,
	{"aws", types.HostingPlatformManaged}:          awsPlatformManaged,
	{"gcp", types.HostingSelfManaged}:              gcpSelfManaged,
	{"gcp", types.HostingPlatformManaged}:          gcpPlatformManaged,
	{"azure", types.HostingSelfManaged}:            azureSelfManaged,
	{"azure", types.HostingPlatformManaged}:        azurePlatformManaged,
	{"digitalocean", types.HostingSelfManaged}:     digitalOceanSelfManaged,
	{"digitalocean", types.HostingPlatformManaged}: digitalOceanPlatformManaged,
	{"hetzner", types.HostingSelfManaged}:          hetznerSelfManaged,
	{"linode", types.HostingSelfManaged}:           linodeSelfManaged,
	{"vultr", types.HostingSelfManaged}:            vultrSelfManaged,
	{"heroku", types.HostingPlatformManaged}:       herokuPlatformManaged,
	{"render", types.HostingPlatformManaged}:       renderPlatformManaged,
	{"vercel", types.HostingPlatformManaged}:       vercelPlatformManaged,
	{"netlify", types.HostingPlatformManaged}:      netlifyPlatformManaged,
	{"supabase", types.HostingPlatformManaged}:     supabasePlatformManaged,
}

// HasResourceTemplate reports whether main.tf can be generated for the combination without a
// placeholder.
func HasResourceTemplate(providerID string, hosting types.HostingModel) bool {
	_, ok := resourceTemplates[dispatchKey{providerID, hosting}]
	return ok
}

func awsSelfManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		aws.GenerateUbuntuAmiDataResource("ubuntu"),
		aws.GenerateSecurityGroup("web", tc.value("{{PROJECT_SLUG}}-web"), webPorts),
		aws.GenerateEc2InstanceResource(
			"web",
			"data.aws_ami.ubuntu.id",
			tc.ref("instance_type", "t3.micro"),
			tc.ref("key_name", ""),
			[]string{"aws_security_group.web.id"},
			map[string]hclwrite.Tokens{
				"Name":    hclwrite.TokensForValue(tc.value("{{PROJECT_NAME}}-web")),
				"Project": hclwrite.TokensForValue(tc.value("{{PROJECT_NAME}}")),
			},
		),
	)
}

func awsPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		aws.GenerateAppRunnerService("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("container_image", "public.ecr.aws/nginx/nginx:latest"), 80),
	)
}

func gcpSelfManaged(body *hclwrite.Body, tc *templateContext) {
	tag := tc.value("{{PROJECT_SLUG}}-web")
	appendBlocks(body,
		gcp.GenerateFirewall("web", tc.value("{{PROJECT_SLUG}}-allow-web"), []string{"22", "80", "443"}, tag),
		gcp.GenerateComputeInstance("web", tc.value("{{PROJECT_SLUG}}-web"), tc.ref("machine_type", "e2-small"), tc.ref("zone", "us-central1-a"), tag),
	)
}

func gcpPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		gcp.GenerateCloudRunService("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("region", "us-central1"), tc.ref("container_image", "us-docker.pkg.dev/cloudrun/container/hello")),
		gcp.GenerateCloudRunPublicInvoker("public", "google_cloud_run_v2_service.app"),
	)
}

func azureSelfManaged(body *hclwrite.Body, tc *templateContext) {
	adminUser := tc.ref("admin_username", "azureuser")
	appendBlocks(body,
		azure.GenerateResourceGroup(tc.value("{{PROJECT_SLUG}}-rg"), tc.ref("location", "eastus")),
		azure.GenerateVirtualNetwork(tc.value("{{PROJECT_SLUG}}-vnet")),
		azure.GenerateSubnet(tc.value("{{PROJECT_SLUG}}-subnet")),
		azure.GeneratePublicIP(tc.value("{{PROJECT_SLUG}}-ip")),
		azure.GenerateNetworkSecurityGroup(tc.value("{{PROJECT_SLUG}}-nsg"), webPorts),
		azure.GenerateNetworkInterface(tc.value("{{PROJECT_SLUG}}-nic")),
		azure.GenerateSecurityGroupAssociation(),
		azure.GenerateLinuxVirtualMachine(tc.value("{{PROJECT_SLUG}}-web"), tc.ref("vm_size", "Standard_B1s"), adminUser, tc.ref("ssh_public_key", "~/.ssh/id_rsa.pub")),
	)
}

func azurePlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		azure.GenerateResourceGroup(tc.value("{{PROJECT_SLUG}}-rg"), tc.ref("location", "eastus")),
		azure.GenerateServicePlan(tc.value("{{PROJECT_SLUG}}-plan"), tc.ref("app_service_sku", "B1")),
		azure.GenerateLinuxWebApp(tc.value("{{PROJECT_SLUG}}"), tc.ref("container_image", "nginx:latest")),
	)
}

func digitalOceanSelfManaged(body *hclwrite.Body, tc *templateContext) {
	sshKeys := utils.TokensForList(nil)
	if tc.has("ssh_key_fingerprint") {
		sshKeys = utils.TokensForResourceReference(`var.ssh_key_fingerprint != "" ? [var.ssh_key_fingerprint] : []`)
	}

	appendBlocks(body,
		digitalocean.GenerateDroplet("web",
			tc.ref("droplet_name", tc.value("{{PROJECT_SLUG}}-web").AsString()),
			tc.ref("region", "nyc3"),
			tc.ref("droplet_size", "s-1vcpu-1gb"),
			sshKeys,
		),
		digitalocean.GenerateFirewall("web", tc.value("{{PROJECT_SLUG}}-web"), "digitalocean_droplet.web", webPorts),
	)
}

func digitalOceanPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		digitalocean.GenerateApp("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("region", "nyc3"), tc.ref("github_repo", "")),
	)
}

func hetznerSelfManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		hetzner.GenerateFirewall("web", tc.value("{{PROJECT_SLUG}}-web"), webPorts),
		hetzner.GenerateServer("web",
			tc.ref("server_name", tc.value("{{PROJECT_SLUG}}-web").AsString()),
			tc.ref("server_type", "cx22"),
			tc.ref("location", "nbg1"),
			"hcloud_firewall.web",
		),
	)
}

func linodeSelfManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		linode.GenerateInstance("web", tc.value("{{PROJECT_SLUG}}-web"), tc.ref("region", "us-east"), tc.ref("instance_type", "g6-nanode-1"), tc.ref("root_password", "")),
		linode.GenerateFirewall("web", tc.value("{{PROJECT_SLUG}}-web"), "linode_instance.web", webPorts),
	)
}

func vultrSelfManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		vultr.GenerateInstance("web", tc.value("{{PROJECT_SLUG}}-web"), tc.ref("plan", "vc2-1c-1gb"), tc.ref("region", "ewr")),
	)
}

func herokuPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		paas.GenerateHerokuApp("app", tc.ref("app_name", tc.value("{{PROJECT_SLUG}}").AsString()), tc.ref("region", "us")),
	)
}

func renderPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		paas.GenerateRenderWebService("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("plan", "starter"), tc.ref("region", "oregon"), tc.ref("repo_url", "")),
	)
}

func vercelPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		paas.GenerateVercelProject("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("framework", "nextjs"), tc.ref("github_repo", "")),
	)
}

func netlifyPlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		paas.GenerateNetlifySiteData("app", tc.ref("site_name", tc.value("{{PROJECT_SLUG}}").AsString()), tc.ref("team_slug", "")),
		paas.GenerateNetlifyBuildSettings("app", "data.netlify_site.app"),
	)
}

func supabasePlatformManaged(body *hclwrite.Body, tc *templateContext) {
	appendBlocks(body,
		paas.GenerateSupabaseProject("app", tc.value("{{PROJECT_SLUG}}"), tc.ref("organization_id", ""), tc.ref("database_password", ""), tc.ref("region", "us-east-1")),
	)
}

// placeholderMain is emitted when no template exists for the provider and hosting model.
func placeholderMain(body *hclwrite.Body, providerID string, hosting types.HostingModel) {
	body.AppendUnstructuredTokens(utils.TokensForComment("# No resource template exists for provider \"" + providerID + "\" with " + string(hosting) + " hosting."))
	body.AppendUnstructuredTokens(utils.TokensForComment("# Declare the resources for this project here."))
	body.AppendNewline()
	localsBody := body.AppendNewBlock("locals", nil).Body()
	localsBody.SetAttributeValue("provider_id", cty.StringVal(providerID))
}
