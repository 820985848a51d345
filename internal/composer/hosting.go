package composer

import "github.com/launchpad-ops/tfscaffold/internal/types"

type HostingClass int

const (
	// HostingUnclassified providers are generated self-managed after a warning.
	HostingUnclassified HostingClass = iota
	// HostingPlatformOnly providers only run managed workloads.
	HostingPlatformOnly
	// HostingSelfHostable providers offer virtual machines and possibly a managed platform.
	HostingSelfHostable
)

var hostingClasses = map[string]HostingClass{
	"heroku":       HostingPlatformOnly,
	"render":       HostingPlatformOnly,
	"vercel":       HostingPlatformOnly,
	"netlify":      HostingPlatformOnly,
	"supabase":     HostingPlatformOnly,
	"aws":          HostingSelfHostable,
	"gcp":          HostingSelfHostable,
	"azure":        HostingSelfHostable,
	"digitalocean": HostingSelfHostable,
	"hetzner":      HostingSelfHostable,
	"linode":       HostingSelfHostable,
	"vultr":        HostingSelfHostable,
}

// self-hostable providers that also have a managed app platform
var platformManagedAllowList = map[string]bool{
	"aws":          true,
	"gcp":          true,
	"azure":        true,
	"digitalocean": true,
}

func ClassifyHosting(providerID string) HostingClass {
	return hostingClasses[providerID]
}

// HostingOptions lists the hosting models offered for a provider, the first being the default.
// Unclassified providers get none and are defaulted by the caller.
func HostingOptions(providerID string) []types.HostingModel {
	switch ClassifyHosting(providerID) {
	case HostingPlatformOnly:
		return []types.HostingModel{types.HostingPlatformManaged}
	case HostingSelfHostable:
		if platformManagedAllowList[providerID] {
			return []types.HostingModel{types.HostingSelfManaged, types.HostingPlatformManaged}
		}
		return []types.HostingModel{types.HostingSelfManaged}
	}
	return nil
}
