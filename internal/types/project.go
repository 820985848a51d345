package types

type HostingModel string

const (
	HostingSelfManaged     HostingModel = "self-managed"
	HostingPlatformManaged HostingModel = "platform-managed"
)

func (h HostingModel) String() string {
	return string(h)
}

type BackendMode string

const (
	BackendLocal  BackendMode = "local"
	BackendRemote BackendMode = "remote"
)

type BillingModel string

const (
	BillingFixed       BillingModel = "fixed"
	BillingPassthrough BillingModel = "passthrough"
	BillingHybrid      BillingModel = "hybrid"
)

var BillingModels = []BillingModel{BillingFixed, BillingPassthrough, BillingHybrid}

type HandoverRole string

const (
	HandoverRoleAdmin    HandoverRole = "admin"
	HandoverRoleMaintain HandoverRole = "maintain"
)

var HandoverRoles = []HandoverRole{HandoverRoleAdmin, HandoverRoleMaintain}

// StateBackend describes where terraform keeps its state. Type and Settings are only
// meaningful in remote mode; Settings are fully substituted.
type StateBackend struct {
	Mode     BackendMode    `json:"mode" yaml:"mode" validate:"oneof=local remote"`
	Type     string         `json:"type,omitempty" yaml:"type,omitempty" validate:"required_if=Mode remote"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

func (s StateBackend) IsRemote() bool {
	return s.Mode == BackendRemote && s.Type != "" && len(s.Settings) > 0
}

type ReverseProxyConfig struct {
	Domain       string `json:"domain" yaml:"domain" validate:"required,fqdn"`
	ContactEmail string `json:"contact_email" yaml:"contact_email" validate:"required,email"`
}

type BillingConfig struct {
	Model BillingModel `json:"model" yaml:"model" validate:"oneof=fixed passthrough hybrid"`
	// decimal strings, already validated as non-negative
	MonthlyFee    string `json:"monthly_fee" yaml:"monthly_fee"`
	MarkupPercent string `json:"markup_percent" yaml:"markup_percent"`
	Currency      string `json:"currency" yaml:"currency" validate:"required,len=3,alpha"`
}

type RepoHandoverConfig struct {
	SourceOwner string       `json:"source_owner" yaml:"source_owner" validate:"required"`
	SourceRepo  string       `json:"source_repo" yaml:"source_repo" validate:"required"`
	DestOwner   string       `json:"dest_owner" yaml:"dest_owner" validate:"required"`
	DestRepo    string       `json:"dest_repo" yaml:"dest_repo" validate:"required"`
	Role        HandoverRole `json:"role" yaml:"role" validate:"oneof=admin maintain"`
}

func (h RepoHandoverConfig) SourceSlug() string {
	return h.SourceOwner + "/" + h.SourceRepo
}

func (h RepoHandoverConfig) DestSlug() string {
	return h.DestOwner + "/" + h.DestRepo
}

// ProjectConfiguration is the complete, validated set of answers the composer collects.
// Optional features are nil when disabled.
type ProjectConfiguration struct {
	ProjectName  string              `validate:"required"`
	Provider     *ProviderDescriptor `validate:"required"`
	Variables    *ResolvedVariables  `validate:"required"`
	HostingModel HostingModel        `validate:"oneof=self-managed platform-managed"`
	StateBackend StateBackend
	ReverseProxy *ReverseProxyConfig
	Billing      *BillingConfig
	RepoHandover *RepoHandoverConfig

	// names of variables added by the reverse proxy step rather than by the descriptor
	InjectedVariables []string
}

func (c *ProjectConfiguration) ReverseProxyEnabled() bool {
	return c.ReverseProxy != nil
}

func (c *ProjectConfiguration) BillingEnabled() bool {
	return c.Billing != nil
}

func (c *ProjectConfiguration) RepoHandoverEnabled() bool {
	return c.RepoHandover != nil
}

// Variables injected into the resolved set when the reverse proxy is enabled, unless the
// provider's own schema already declares them.
const (
	ProxyDomainVariable       = "proxy_domain"
	ProxyContactEmailVariable = "proxy_contact_email"
)

var injectedVariableDescriptions = map[string]string{
	ProxyDomainVariable:       "Domain served by the reverse proxy",
	ProxyContactEmailVariable: "Contact email used for TLS certificate registration",
}

// VariableDescription returns the human readable description of a resolved variable, falling
// back to a generic sentence when neither the descriptor nor the injected set describes it.
func (c *ProjectConfiguration) VariableDescription(name string) string {
	if spec, ok := c.Provider.Variable(name); ok && spec.Description != "" {
		return spec.Description
	}
	if desc, ok := injectedVariableDescriptions[name]; ok {
		return desc
	}
	return "Value for " + name
}
