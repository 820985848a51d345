package hcl

// providerBinding maps a catalog provider ID onto its terraform provider.
type providerBinding struct {
	localName string
	source    string
	version   string
	// provider attribute -> resolved variable, emitted only when the variable exists
	auth []authAttribute
	// empty nested blocks the provider requires
	blocks []string
}

type authAttribute struct {
	attribute string
	variable  string
}

var providerBindings = map[string]providerBinding{
	"aws": {
		localName: "aws",
		source:    "hashicorp/aws",
		version:   "~> 6.0",
		auth:      []authAttribute{{"region", "region"}},
	},
	"gcp": {
		localName: "google",
		source:    "hashicorp/google",
		version:   "~> 6.0",
		auth:      []authAttribute{{"project", "project_id"}, {"region", "region"}, {"zone", "zone"}},
	},
	"azure": {
		localName: "azurerm",
		source:    "hashicorp/azurerm",
		version:   "~> 4.0",
		auth:      []authAttribute{{"subscription_id", "subscription_id"}},
		blocks:    []string{"features"},
	},
	"digitalocean": {
		localName: "digitalocean",
		source:    "digitalocean/digitalocean",
		version:   "~> 2.0",
		auth:      []authAttribute{{"token", "do_token"}},
	},
	"hetzner": {
		localName: "hcloud",
		source:    "hetznercloud/hcloud",
		version:   "~> 1.49",
		auth:      []authAttribute{{"token", "hcloud_token"}},
	},
	"linode": {
		localName: "linode",
		source:    "linode/linode",
		version:   "~> 2.0",
		auth:      []authAttribute{{"token", "linode_token"}},
	},
	"vultr": {
		localName: "vultr",
		source:    "vultr/vultr",
		version:   "~> 2.0",
		auth:      []authAttribute{{"api_key", "vultr_api_key"}},
	},
	"heroku": {
		localName: "heroku",
		source:    "heroku/heroku",
		version:   "~> 5.0",
		auth:      []authAttribute{{"email", "heroku_email"}, {"api_key", "heroku_api_key"}},
	},
	"render": {
		localName: "render",
		source:    "render-oss/render",
		version:   "~> 1.0",
		auth:      []authAttribute{{"api_key", "render_api_key"}, {"owner_id", "render_owner_id"}},
	},
	"vercel": {
		localName: "vercel",
		source:    "vercel/vercel",
		version:   "~> 2.0",
		auth:      []authAttribute{{"api_token", "vercel_api_token"}},
	},
	"netlify": {
		localName: "netlify",
		source:    "netlify/netlify",
		version:   "~> 0.2",
		auth:      []authAttribute{{"token", "netlify_token"}, {"default_team_slug", "team_slug"}},
	},
	"supabase": {
		localName: "supabase",
		source:    "supabase/supabase",
		version:   "~> 1.0",
		auth:      []authAttribute{{"access_token", "supabase_access_token"}},
	},
}

// HasProviderBinding reports whether versions.tf and provider.tf can be generated for the
// provider without placeholders.
func HasProviderBinding(providerID string) bool {
	_, ok := providerBindings[providerID]
	return ok
}
