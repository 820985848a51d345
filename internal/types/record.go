package types

import "fmt"

const (
	RecordDirName  = ".tfscaffold"
	RecordFileName = "project.yaml"
)

// ProjectRecord is the flat key/value summary of a generated project. Optional feature
// generators read it in later runs instead of re-prompting.
type ProjectRecord struct {
	ID           string `yaml:"id"`
	ProjectName  string `yaml:"project_name"`
	ProviderID   string `yaml:"provider_id"`
	ProviderName string `yaml:"provider_name"`
	HostingModel string `yaml:"hosting_model"`
	StateBackend string `yaml:"state_backend"`
	BackendType  string `yaml:"state_backend_type,omitempty"`

	ReverseProxyEnabled bool   `yaml:"reverse_proxy_enabled"`
	ProxyDomain         string `yaml:"reverse_proxy_domain,omitempty"`
	ProxyContactEmail   string `yaml:"reverse_proxy_contact_email,omitempty"`

	BillingEnabled       bool   `yaml:"billing_enabled"`
	BillingModel         string `yaml:"billing_model,omitempty"`
	BillingMonthlyFee    string `yaml:"billing_monthly_fee,omitempty"`
	BillingMarkupPercent string `yaml:"billing_markup_percent,omitempty"`
	BillingCurrency      string `yaml:"billing_currency,omitempty"`

	RepoHandoverEnabled bool   `yaml:"repo_handover_enabled"`
	HandoverSourceOwner string `yaml:"handover_source_owner,omitempty"`
	HandoverSourceRepo  string `yaml:"handover_source_repo,omitempty"`
	HandoverDestOwner   string `yaml:"handover_dest_owner,omitempty"`
	HandoverDestRepo    string `yaml:"handover_dest_repo,omitempty"`
	HandoverRole        string `yaml:"handover_role,omitempty"`
}

func NewProjectRecord(id string, cfg *ProjectConfiguration) *ProjectRecord {
	record := &ProjectRecord{
		ID:           id,
		ProjectName:  cfg.ProjectName,
		ProviderID:   cfg.Provider.ID,
		ProviderName: cfg.Provider.Name,
		HostingModel: string(cfg.HostingModel),
		StateBackend: string(BackendLocal),
	}

	if cfg.StateBackend.IsRemote() {
		record.StateBackend = string(BackendRemote)
		record.BackendType = cfg.StateBackend.Type
	}

	if rp := cfg.ReverseProxy; rp != nil {
		record.ReverseProxyEnabled = true
		record.ProxyDomain = rp.Domain
		record.ProxyContactEmail = rp.ContactEmail
	}

	if b := cfg.Billing; b != nil {
		record.BillingEnabled = true
		record.BillingModel = string(b.Model)
		record.BillingMonthlyFee = b.MonthlyFee
		record.BillingMarkupPercent = b.MarkupPercent
		record.BillingCurrency = b.Currency
	}

	if h := cfg.RepoHandover; h != nil {
		record.RepoHandoverEnabled = true
		record.HandoverSourceOwner = h.SourceOwner
		record.HandoverSourceRepo = h.SourceRepo
		record.HandoverDestOwner = h.DestOwner
		record.HandoverDestRepo = h.DestRepo
		record.HandoverRole = string(h.Role)
	}

	return record
}

func (r *ProjectRecord) ReverseProxy() (*ReverseProxyConfig, error) {
	if !r.ReverseProxyEnabled {
		return nil, fmt.Errorf("%w: reverse proxy is not enabled for project %q", ErrFeatureDisabled, r.ProjectName)
	}
	return &ReverseProxyConfig{Domain: r.ProxyDomain, ContactEmail: r.ProxyContactEmail}, nil
}

func (r *ProjectRecord) Billing() (*BillingConfig, error) {
	if !r.BillingEnabled {
		return nil, fmt.Errorf("%w: billing is not enabled for project %q", ErrFeatureDisabled, r.ProjectName)
	}
	return &BillingConfig{
		Model:         BillingModel(r.BillingModel),
		MonthlyFee:    r.BillingMonthlyFee,
		MarkupPercent: r.BillingMarkupPercent,
		Currency:      r.BillingCurrency,
	}, nil
}

func (r *ProjectRecord) RepoHandover() (*RepoHandoverConfig, error) {
	if !r.RepoHandoverEnabled {
		return nil, fmt.Errorf("%w: repository handover is not enabled for project %q", ErrFeatureDisabled, r.ProjectName)
	}
	return &RepoHandoverConfig{
		SourceOwner: r.HandoverSourceOwner,
		SourceRepo:  r.HandoverSourceRepo,
		DestOwner:   r.HandoverDestOwner,
		DestRepo:    r.HandoverDestRepo,
		Role:        HandoverRole(r.HandoverRole),
	}, nil
}
