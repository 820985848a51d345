package hcl

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/zclconf/go-cty/cty"
)

const (
	RequiredTerraformVersion = ">= 1.5.0"
	LocalStatePath           = "terraform.tfstate"
)

type ProjectHCLService struct{}

func NewProjectHCLService() *ProjectHCLService {
	return &ProjectHCLService{}
}

// GenerateTerraformFiles renders every primary terraform artifact in memory. Warnings name the
// artifacts that had to fall back to placeholders.
func (s *ProjectHCLService) GenerateTerraformFiles(cfg *types.ProjectConfiguration) (types.TerraformFiles, []string, error) {
	warnings := s.providerWarnings(cfg)

	backendTf, err := s.GenerateBackendTf(cfg)
	if err != nil {
		return types.TerraformFiles{}, warnings, &types.GenerationError{Artifact: "backend.tf", Err: err}
	}

	tfvars, err := s.GenerateTfvarsJSON(cfg)
	if err != nil {
		return types.TerraformFiles{}, warnings, &types.GenerationError{Artifact: "terraform.tfvars.json", Err: err}
	}

	mainTf, mainWarnings := s.GenerateMainTf(cfg)
	outputsTf, outputWarnings := s.GenerateOutputsTf(cfg)
	warnings = append(warnings, mainWarnings...)
	warnings = append(warnings, outputWarnings...)

	return types.TerraformFiles{
		VersionsTf:  s.GenerateVersionsTf(cfg),
		ProviderTf:  s.GenerateProviderTf(cfg),
		BackendTf:   backendTf,
		VariablesTf: s.GenerateVariablesTf(cfg),
		MainTf:      mainTf,
		OutputsTf:   outputsTf,
		TfvarsJSON:  tfvars,
	}, warnings, nil
}

func (s *ProjectHCLService) providerWarnings(cfg *types.ProjectConfiguration) []string {
	if HasProviderBinding(cfg.Provider.ID) {
		return nil
	}
	return []string{fmt.Sprintf("no terraform provider mapping for %q: versions.tf and provider.tf contain placeholders", cfg.Provider.ID)}
}

func (s *ProjectHCLService) GenerateVersionsTf(cfg *types.ProjectConfiguration) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	terraformBody := rootBody.AppendNewBlock("terraform", nil).Body()
	terraformBody.SetAttributeValue("required_version", cty.StringVal(RequiredTerraformVersion))
	terraformBody.AppendNewline()

	requiredProvidersBody := terraformBody.AppendNewBlock("required_providers", nil).Body()
	binding, ok := providerBindings[cfg.Provider.ID]
	if !ok {
		requiredProvidersBody.AppendUnstructuredTokens(utils.TokensForComment(fmt.Sprintf("# TODO: add the source and version of the %q provider", cfg.Provider.ID)))
		return format(f)
	}

	requiredProvidersBody.SetAttributeRaw(binding.localName, utils.TokensForMap(map[string]hclwrite.Tokens{
		"source":  utils.TokensForStringTemplate(binding.source),
		"version": utils.TokensForStringTemplate(binding.version),
	}))

	return format(f)
}

func (s *ProjectHCLService) GenerateProviderTf(cfg *types.ProjectConfiguration) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	binding, ok := providerBindings[cfg.Provider.ID]
	if !ok {
		rootBody.AppendUnstructuredTokens(utils.TokensForComment(fmt.Sprintf("# TODO: configure the %q provider", cfg.Provider.ID)))
		return format(f)
	}

	providerBody := rootBody.AppendNewBlock("provider", []string{binding.localName}).Body()
	for _, auth := range binding.auth {
		if cfg.Variables.Has(auth.variable) {
			providerBody.SetAttributeRaw(auth.attribute, utils.TokensForVarReference(auth.variable))
		}
	}
	for _, block := range binding.blocks {
		providerBody.AppendNewBlock(block, nil)
	}

	return format(f)
}

// GenerateBackendTf renders the remote backend when one was selected with settings, and the local
// backend otherwise.
func (s *ProjectHCLService) GenerateBackendTf(cfg *types.ProjectConfiguration) (string, error) {
	f := hclwrite.NewEmptyFile()
	terraformBody := f.Body().AppendNewBlock("terraform", nil).Body()

	if !cfg.StateBackend.IsRemote() {
		backendBody := terraformBody.AppendNewBlock("backend", []string{"local"}).Body()
		backendBody.SetAttributeValue("path", cty.StringVal(LocalStatePath))
		return format(f), nil
	}

	backendBody := terraformBody.AppendNewBlock("backend", []string{cfg.StateBackend.Type}).Body()
	for _, key := range utils.SortedKeys(cfg.StateBackend.Settings) {
		value, err := utils.ToCtyValue(cfg.StateBackend.Settings[key])
		if err != nil {
			return "", fmt.Errorf("backend setting %s: %w", key, err)
		}
		backendBody.SetAttributeValue(key, value)
	}

	return format(f), nil
}

func (s *ProjectHCLService) GenerateVariablesTf(cfg *types.ProjectConfiguration) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for i, name := range cfg.Variables.Names() {
		if i > 0 {
			rootBody.AppendNewline()
		}
		value, _ := cfg.Variables.Get(name)

		variableBody := rootBody.AppendNewBlock("variable", []string{name}).Body()
		variableBody.SetAttributeRaw("type", utils.TokensForResourceReference("string"))
		variableBody.SetAttributeValue("description", cty.StringVal(cfg.VariableDescription(name)))
		// sensitive values only live in terraform.tfvars.json
		if utils.IsSensitiveName(name) {
			variableBody.SetAttributeValue("sensitive", cty.True)
			continue
		}
		variableBody.SetAttributeValue("default", cty.StringVal(value))
	}

	return format(f)
}

func (s *ProjectHCLService) GenerateMainTf(cfg *types.ProjectConfiguration) (string, []string) {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	rootBody.AppendUnstructuredTokens(utils.TokensForComment(fmt.Sprintf("# %s resources for %s (%s)", cfg.Provider.Name, cfg.ProjectName, cfg.HostingModel)))
	rootBody.AppendNewline()

	template, ok := resourceTemplates[dispatchKey{cfg.Provider.ID, cfg.HostingModel}]
	if !ok {
		placeholderMain(rootBody, cfg.Provider.ID, cfg.HostingModel)
		return format(f), []string{fmt.Sprintf("no resource template for %s with %s hosting: main.tf is a placeholder", cfg.Provider.ID, cfg.HostingModel)}
	}

	template(rootBody, newTemplateContext(cfg))
	return format(f), nil
}

func (s *ProjectHCLService) GenerateOutputsTf(cfg *types.ProjectConfiguration) (string, []string) {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	var warnings []string
	outputs, ok := outputDefinitions[dispatchKey{cfg.Provider.ID, cfg.HostingModel}]
	outputs = slices.Clone(outputs)
	if !ok {
		rootBody.AppendUnstructuredTokens(utils.TokensForComment(fmt.Sprintf("# No output template exists for provider %q with %s hosting.", cfg.Provider.ID, cfg.HostingModel)))
		rootBody.AppendNewline()
		warnings = append(warnings, fmt.Sprintf("no output template for %s with %s hosting: outputs.tf is a placeholder", cfg.Provider.ID, cfg.HostingModel))
	}

	outputs = append(outputs, outputDefinition{name: "project_name", value: `"` + cfg.ProjectName + `"`, description: "Name of the scaffolded project"})
	if cfg.ReverseProxyEnabled() && cfg.Variables.Has(types.ProxyDomainVariable) {
		outputs = append(outputs, outputDefinition{name: "proxy_domain", value: "var." + types.ProxyDomainVariable, description: "Domain served by the reverse proxy"})
	}

	for i, output := range outputs {
		if i > 0 {
			rootBody.AppendNewline()
		}
		outputBody := rootBody.AppendNewBlock("output", []string{output.name}).Body()
		outputBody.SetAttributeRaw("value", utils.TokensForResourceReference(output.value))
		outputBody.SetAttributeValue("description", cty.StringVal(output.description))
		if output.sensitive {
			outputBody.SetAttributeValue("sensitive", cty.True)
		}
	}

	return format(f), warnings
}

// GenerateTfvarsJSON holds every resolved value, sensitive ones included. Keys are sorted.
func (s *ProjectHCLService) GenerateTfvarsJSON(cfg *types.ProjectConfiguration) (string, error) {
	data, err := json.MarshalIndent(cfg.Variables.Map(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tfvars: %w", err)
	}
	return string(data) + "\n", nil
}

func format(f *hclwrite.File) string {
	return string(hclwrite.Format(f.Bytes()))
}
