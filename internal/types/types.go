package types

// TerraformFiles holds the rendered contents of the primary terraform artifacts.
type TerraformFiles struct {
	VersionsTf  string `json:"versions_tf"`
	ProviderTf  string `json:"provider_tf"`
	BackendTf   string `json:"backend_tf"`
	VariablesTf string `json:"variables_tf"`
	MainTf      string `json:"main_tf"`
	OutputsTf   string `json:"outputs_tf"`
	TfvarsJSON  string `json:"tfvars_json"`
}

// GeneratedArtifactSet lists what a generation run wrote, relative to Dir, in write order.
type GeneratedArtifactSet struct {
	Dir      string
	Files    []string
	Warnings []string
	Failures []FeatureFailure
}

func (s *GeneratedArtifactSet) Add(file string) {
	s.Files = append(s.Files, file)
}

func (s *GeneratedArtifactSet) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// Degraded reports whether any non-critical step fell back to a default or failed.
func (s *GeneratedArtifactSet) Degraded() bool {
	return len(s.Warnings) > 0 || len(s.Failures) > 0
}
