package hcl

import "github.com/launchpad-ops/tfscaffold/internal/types"

type outputDefinition struct {
	name        string
	value       string
	description string
	sensitive   bool
}

var outputDefinitions = map[dispatchKey][]outputDefinition{
	{"aws", types.HostingSelfManaged}: {
		{name: "public_ip", value: "aws_instance.web.public_ip", description: "Public IP address of the web host"},
		{name: "instance_id", value: "aws_instance.web.id", description: "EC2 instance ID"},
	},
	{"aws", types.HostingPlatformManaged}: {
		{name: "service_url", value: "aws_apprunner_service.app.service_url", description: "App Runner service URL"},
	},
	{"gcp", types.HostingSelfManaged}: {
		{name: "public_ip", value: "google_compute_instance.web.network_interface[0].access_config[0].nat_ip", description: "Public IP address of the web host"},
	},
	{"gcp", types.HostingPlatformManaged}: {
		{name: "service_url", value: "google_cloud_run_v2_service.app.uri", description: "Cloud Run service URL"},
	},
	{"azure", types.HostingSelfManaged}: {
		{name: "public_ip", value: "azurerm_public_ip.web.ip_address", description: "Public IP address of the web host"},
	},
	{"azure", types.HostingPlatformManaged}: {
		{name: "default_hostname", value: "azurerm_linux_web_app.app.default_hostname", description: "Default hostname of the web app"},
	},
	{"digitalocean", types.HostingSelfManaged}: {
		{name: "public_ip", value: "digitalocean_droplet.web.ipv4_address", description: "Public IPv4 address of the droplet"},
		{name: "droplet_id", value: "digitalocean_droplet.web.id", description: "Droplet ID"},
	},
	{"digitalocean", types.HostingPlatformManaged}: {
		{name: "live_url", value: "digitalocean_app.app.live_url", description: "Live URL of the app"},
	},
	{"hetzner", types.HostingSelfManaged}: {
		{name: "public_ip", value: "hcloud_server.web.ipv4_address", description: "Public IPv4 address of the server"},
	},
	{"linode", types.HostingSelfManaged}: {
		{name: "public_ip", value: "linode_instance.web.ip_address", description: "Public IPv4 address of the instance"},
	},
	{"vultr", types.HostingSelfManaged}: {
		{name: "public_ip", value: "vultr_instance.web.main_ip", description: "Main IPv4 address of the instance"},
	},
	{"heroku", types.HostingPlatformManaged}: {
		{name: "web_url", value: "heroku_app.app.web_url", description: "Heroku app URL"},
	},
	{"render", types.HostingPlatformManaged}: {
		{name: "service_url", value: "render_web_service.app.url", description: "Render service URL"},
	},
	{"vercel", types.HostingPlatformManaged}: {
		{name: "project_id", value: "vercel_project.app.id", description: "Vercel project ID"},
	},
	{"netlify", types.HostingPlatformManaged}: {
		{name: "site_id", value: "data.netlify_site.app.id", description: "Netlify site ID"},
	},
	{"supabase", types.HostingPlatformManaged}: {
		{name: "project_id", value: "supabase_project.app.id", description: "Supabase project reference"},
	},
}
