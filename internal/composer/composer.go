package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/looplab/fsm"

	"github.com/launchpad-ops/tfscaffold/internal/registry"
	"github.com/launchpad-ops/tfscaffold/internal/resolver"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

// FSM state constants
const (
	StateStart              = "start"
	StateProviderSelected   = "provider_selected"
	StateProjectNamed       = "project_named"
	StateVariablesResolved  = "variables_resolved"
	StateProxyConfigured    = "proxy_configured"
	StateHandoverConfigured = "handover_configured"
	StateBillingConfigured  = "billing_configured"
	StateBackendSelected    = "backend_selected"
	StateHostingResolved    = "hosting_resolved"
	StateConflictsResolved  = "conflicts_resolved"
)

// FSM event constants
const (
	EventSelectProvider    = "select_provider"
	EventNameProject       = "name_project"
	EventResolveVariables  = "resolve_variables"
	EventConfigureProxy    = "configure_proxy"
	EventConfigureHandover = "configure_handover"
	EventConfigureBilling  = "configure_billing"
	EventSelectBackend     = "select_backend"
	EventResolveHosting    = "resolve_hosting"
	EventResolveConflicts  = "resolve_conflicts"
)

var steps = []string{
	EventSelectProvider,
	EventNameProject,
	EventResolveVariables,
	EventConfigureProxy,
	EventConfigureHandover,
	EventConfigureBilling,
	EventSelectBackend,
	EventResolveHosting,
	EventResolveConflicts,
}

// Collaborators reports which optional external tools are installed.
type Collaborators interface {
	Available(name string) bool
}

type ComposerOpts struct {
	Registry      *registry.Registry
	Prompter      Prompter
	Collaborators Collaborators
	// used as the default answer for the project name question
	ProjectName string
}

type Result struct {
	Config   *types.ProjectConfiguration
	Warnings []string
}

// Composer runs the configuration questions as a fixed sequence of state machine transitions.
// The first three steps abort the session on error; the later ones fall back to a safe default
// and record a warning.
type Composer struct {
	registry      *registry.Registry
	prompter      Prompter
	collaborators Collaborators
	defaultName   string
	validate      *validator.Validate

	FSM      *fsm.FSM
	cfg      *types.ProjectConfiguration
	warnings []string
}

func NewComposer(opts ComposerOpts) *Composer {
	c := &Composer{
		registry:      opts.Registry,
		prompter:      opts.Prompter,
		collaborators: opts.Collaborators,
		defaultName:   opts.ProjectName,
		validate:      validator.New(),
		cfg:           &types.ProjectConfiguration{StateBackend: types.StateBackend{Mode: types.BackendLocal}},
	}
	c.initializeFSM()
	return c
}

func (c *Composer) initializeFSM() {
	step := func(run func() error) fsm.Callback {
		return func(_ context.Context, e *fsm.Event) {
			if err := run(); err != nil {
				e.Cancel(err)
			}
		}
	}

	c.FSM = fsm.NewFSM(
		StateStart,
		fsm.Events{
			{Name: EventSelectProvider, Src: []string{StateStart}, Dst: StateProviderSelected},
			{Name: EventNameProject, Src: []string{StateProviderSelected}, Dst: StateProjectNamed},
			{Name: EventResolveVariables, Src: []string{StateProjectNamed}, Dst: StateVariablesResolved},
			{Name: EventConfigureProxy, Src: []string{StateVariablesResolved}, Dst: StateProxyConfigured},
			{Name: EventConfigureHandover, Src: []string{StateProxyConfigured}, Dst: StateHandoverConfigured},
			{Name: EventConfigureBilling, Src: []string{StateHandoverConfigured}, Dst: StateBillingConfigured},
			{Name: EventSelectBackend, Src: []string{StateBillingConfigured}, Dst: StateBackendSelected},
			{Name: EventResolveHosting, Src: []string{StateBackendSelected}, Dst: StateHostingResolved},
			{Name: EventResolveConflicts, Src: []string{StateHostingResolved}, Dst: StateConflictsResolved},
		},
		fsm.Callbacks{
			"before_" + EventSelectProvider:    step(c.selectProvider),
			"before_" + EventNameProject:       step(c.nameProject),
			"before_" + EventResolveVariables:  step(c.resolveVariables),
			"before_" + EventConfigureProxy:    step(c.configureProxy),
			"before_" + EventConfigureHandover: step(c.configureHandover),
			"before_" + EventConfigureBilling:  step(c.configureBilling),
			"before_" + EventSelectBackend:     step(c.selectBackend),
			"before_" + EventResolveHosting:    step(c.resolveHosting),
			"before_" + EventResolveConflicts:  step(c.resolveConflicts),
			"enter_state": func(_ context.Context, e *fsm.Event) {
				slog.Debug("composer step complete", "state", e.Dst)
			},
		},
	)
}

// Compose walks every step and returns the frozen, validated configuration.
func (c *Composer) Compose(ctx context.Context) (*Result, error) {
	if c.registry == nil || c.registry.Len() == 0 {
		return nil, &types.FatalSetupError{Reason: "no providers to choose from", Err: types.ErrEmptyRegistry}
	}

	for _, event := range steps {
		if err := c.FSM.Event(ctx, event); err != nil {
			var canceled fsm.CanceledError
			if errors.As(err, &canceled) && canceled.Err != nil {
				return nil, canceled.Err
			}
			return nil, fmt.Errorf("composer step %s failed: %w", event, err)
		}
	}

	c.cfg.Variables.Freeze()
	if err := c.validate.Struct(c.cfg); err != nil {
		return nil, fmt.Errorf("composed configuration is invalid: %w", err)
	}

	return &Result{Config: c.cfg, Warnings: c.warnings}, nil
}

func (c *Composer) warn(msg string, args ...any) {
	text := fmt.Sprintf(msg, args...)
	slog.Warn("⚠️ " + text)
	c.warnings = append(c.warnings, text)
}

func (c *Composer) selectProvider() error {
	menu := c.registry.Menu()
	choices := make([]Choice, len(menu))
	for i, entry := range menu {
		label := entry.Descriptor.Name
		if entry.Descriptor.Description != "" {
			label += " - " + entry.Descriptor.Description
		}
		choices[i] = Choice{Value: entry.Descriptor.ID, Label: label, Group: entry.Category}
	}

	idx, err := c.prompter.Choose("provider", "Select a hosting provider", choices, -1)
	if err != nil {
		return fmt.Errorf("failed to select provider: %w", err)
	}

	c.cfg.Provider = menu[idx].Descriptor
	slog.Info("provider selected", "provider", c.cfg.Provider.ID)
	return nil
}

func (c *Composer) nameProject() error {
	defaultName := utils.SanitizeProjectName(c.defaultName)

	answer, err := c.prompter.Ask("project_name", "Project name", defaultName)
	if err != nil {
		return fmt.Errorf("failed to read project name: %w", err)
	}

	name := utils.SanitizeProjectName(answer)
	if strings.TrimSpace(answer) != "" && name != strings.TrimSpace(answer) {
		c.warn("project name %q sanitized to %q", answer, name)
	}
	c.cfg.ProjectName = name
	return nil
}

func (c *Composer) resolveVariables() error {
	desc := c.cfg.Provider
	vars, warnings, err := resolver.ResolveWith(desc, c.cfg.ProjectName, func(spec types.VariableSpec, def string) (string, error) {
		question := spec.Description
		if question == "" {
			question = spec.Name
		}
		return c.prompter.Ask("variables."+spec.Name, question, def)
	})
	if err != nil {
		return err
	}

	for _, w := range warnings {
		c.warn("%s", w)
	}
	c.cfg.Variables = vars
	return nil
}

func (c *Composer) configureProxy() error {
	enabled, err := c.prompter.Confirm("reverse_proxy.enabled", "Configure a Caddy reverse proxy with automatic HTTPS?", false)
	if err != nil {
		c.warn("reverse proxy disabled: %v", err)
		return nil
	}
	if !enabled {
		return nil
	}

	domain, err := c.prompter.Ask("reverse_proxy.domain", "Domain served by the proxy", "")
	if err != nil {
		c.warn("reverse proxy disabled: %v", err)
		return nil
	}
	email, err := c.prompter.Ask("reverse_proxy.contact_email", "Contact email for certificate registration", "")
	if err != nil {
		c.warn("reverse proxy disabled: %v", err)
		return nil
	}

	proxy := &types.ReverseProxyConfig{Domain: strings.TrimSpace(domain), ContactEmail: strings.TrimSpace(email)}
	if err := c.validate.Struct(proxy); err != nil {
		c.warn("reverse proxy disabled: domain %q or email %q is invalid", proxy.Domain, proxy.ContactEmail)
		return nil
	}
	c.cfg.ReverseProxy = proxy

	injected := []struct{ name, value string }{
		{types.ProxyDomainVariable, proxy.Domain},
		{types.ProxyContactEmailVariable, proxy.ContactEmail},
	}
	for _, v := range injected {
		if c.cfg.Variables.Has(v.name) {
			continue
		}
		if err := c.cfg.Variables.Set(v.name, v.value); err != nil {
			return err
		}
		c.cfg.InjectedVariables = append(c.cfg.InjectedVariables, v.name)
	}
	return nil
}

func (c *Composer) configureHandover() error {
	enabled, err := c.prompter.Confirm("repo_handover.enabled", "Prepare a repository handover for the client?", false)
	if err != nil {
		c.warn("repository handover disabled: %v", err)
		return nil
	}
	if !enabled {
		return nil
	}
	if c.collaborators == nil || !c.collaborators.Available("gh") {
		c.warn("repository handover disabled: the GitHub CLI (gh) is not installed")
		return nil
	}

	handover := &types.RepoHandoverConfig{}
	questions := []struct {
		key, question, def string
		target             *string
	}{
		{"repo_handover.source_owner", "Source repository owner", "", &handover.SourceOwner},
		{"repo_handover.source_repo", "Source repository name", c.cfg.ProjectName, &handover.SourceRepo},
		{"repo_handover.dest_owner", "Client GitHub user or organization", "", &handover.DestOwner},
		{"repo_handover.dest_repo", "Repository name on the client side", c.cfg.ProjectName, &handover.DestRepo},
	}
	for _, q := range questions {
		answer, err := c.prompter.Ask(q.key, q.question, q.def)
		if err != nil {
			c.warn("repository handover disabled: %v", err)
			return nil
		}
		answer = strings.TrimSpace(answer)
		if !utils.IsValidGitHubName(answer) {
			c.warn("repository handover disabled: %q is not a valid GitHub name", answer)
			return nil
		}
		*q.target = answer
	}

	roles := make([]Choice, len(types.HandoverRoles))
	for i, r := range types.HandoverRoles {
		roles[i] = Choice{Value: string(r), Label: string(r)}
	}
	idx, err := c.prompter.Choose("repo_handover.role", "Collaborator role for the client", roles, 0)
	if err != nil {
		c.warn("repository handover disabled: %v", err)
		return nil
	}
	handover.Role = types.HandoverRoles[idx]

	c.cfg.RepoHandover = handover
	return nil
}

func (c *Composer) configureBilling() error {
	enabled, err := c.prompter.Confirm("billing.enabled", "Set up recurring billing documents?", false)
	if err != nil {
		c.warn("billing disabled: %v", err)
		return nil
	}
	if !enabled {
		return nil
	}

	models := []Choice{
		{Value: string(types.BillingFixed), Label: "fixed - flat monthly fee"},
		{Value: string(types.BillingPassthrough), Label: "passthrough - client pays the provider directly"},
		{Value: string(types.BillingHybrid), Label: "hybrid - monthly fee plus a markup on infrastructure"},
	}
	idx, err := c.prompter.Choose("billing.model", "Billing model", models, 0)
	if err != nil {
		c.warn("billing disabled: %v", err)
		return nil
	}

	billing := &types.BillingConfig{Model: types.BillingModels[idx], MonthlyFee: "0", MarkupPercent: "0"}

	if billing.Model == types.BillingFixed || billing.Model == types.BillingHybrid {
		billing.MonthlyFee = c.askAmount("billing.monthly_fee", "Monthly fee")
	}
	if billing.Model == types.BillingHybrid {
		billing.MarkupPercent = c.askAmount("billing.markup_percent", "Markup on infrastructure cost (%)")
	}

	currency, err := c.prompter.Ask("billing.currency", "Currency", "USD")
	if err != nil {
		currency = ""
	}
	billing.Currency = utils.NormalizeCurrency(currency)

	if err := c.validate.Struct(billing); err != nil {
		c.warn("currency %q is invalid, using USD", billing.Currency)
		billing.Currency = "USD"
	}

	c.cfg.Billing = billing
	return nil
}

func (c *Composer) askAmount(key, question string) string {
	answer, err := c.prompter.Ask(key, question, "0")
	if err != nil {
		c.warn("%s: %v, using 0", question, err)
		return "0"
	}
	value, ok := utils.ParseNonNegativeDecimal(answer)
	if !ok {
		c.warn("%s %q is not a non-negative number, using 0", question, answer)
	}
	return value
}

func (c *Composer) selectBackend() error {
	remote, err := c.prompter.Confirm("state_backend.remote", "Store terraform state in a remote backend?", false)
	if err != nil {
		c.warn("using local state: %v", err)
		return nil
	}
	if !remote {
		return nil
	}

	desc := c.cfg.Provider
	backendTypes := desc.RemoteBackendTypes()
	if len(backendTypes) == 0 {
		c.warn("%s has no remote backend definition, using local state", desc.Name)
		return nil
	}

	backendType := backendTypes[0]
	if len(backendTypes) > 1 {
		choices := make([]Choice, len(backendTypes))
		for i, t := range backendTypes {
			choices[i] = Choice{Value: t, Label: t}
		}
		idx, err := c.prompter.Choose("state_backend.type", "Remote backend type", choices, 0)
		if err != nil {
			c.warn("using local state: %v", err)
			return nil
		}
		backendType = backendTypes[idx]
	}

	settings, warnings, err := resolver.ResolveBackend(desc, backendType, c.cfg.ProjectName, c.cfg.Variables)
	if err != nil {
		c.warn("using local state: %v", err)
		return nil
	}
	for _, w := range warnings {
		c.warn("%s", w)
	}
	if len(settings) == 0 {
		c.warn("backend %s has no settings, using local state", backendType)
		return nil
	}

	c.cfg.StateBackend = types.StateBackend{Mode: types.BackendRemote, Type: backendType, Settings: settings}
	return nil
}

func (c *Composer) resolveHosting() error {
	desc := c.cfg.Provider
	options := HostingOptions(desc.ID)

	switch len(options) {
	case 0:
		c.warn("%s has no known hosting model, defaulting to %s", desc.Name, types.HostingSelfManaged)
		c.cfg.HostingModel = types.HostingSelfManaged
		return nil
	case 1:
		c.cfg.HostingModel = options[0]
		slog.Info("hosting model fixed by provider", "provider", desc.ID, "hosting", options[0])
		return nil
	}

	choices := []Choice{
		{Value: string(types.HostingSelfManaged), Label: "self-managed - virtual machine you operate"},
		{Value: string(types.HostingPlatformManaged), Label: "platform-managed - provider runs the application"},
	}
	idx, err := c.prompter.Choose("hosting_model", "Hosting model", choices, 0)
	if err != nil {
		c.warn("hosting model defaulted to %s: %v", types.HostingSelfManaged, err)
		c.cfg.HostingModel = types.HostingSelfManaged
		return nil
	}
	c.cfg.HostingModel = options[idx]
	return nil
}

// resolveConflicts drops the reverse proxy for platform-managed hosting, where there is no
// server to run it on.
func (c *Composer) resolveConflicts() error {
	if c.cfg.HostingModel != types.HostingPlatformManaged || c.cfg.ReverseProxy == nil {
		return nil
	}

	c.warn("reverse proxy removed: %s hosting on %s has no server to run it", c.cfg.HostingModel, c.cfg.Provider.Name)
	c.cfg.ReverseProxy = nil
	for _, name := range c.cfg.InjectedVariables {
		if err := c.cfg.Variables.Delete(name); err != nil {
			return err
		}
	}
	c.cfg.InjectedVariables = nil
	return nil
}
