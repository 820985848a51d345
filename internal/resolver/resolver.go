package resolver

import (
	"fmt"
	"strings"

	"github.com/launchpad-ops/tfscaffold/internal/types"
)

// AskFunc supplies the value for one variable given its substituted default. Returning an empty
// or whitespace-only string accepts the default.
type AskFunc func(spec types.VariableSpec, defaultValue string) (string, error)

// Resolve computes every variable of the descriptor non-interactively. Overrides are keyed by
// variable name; names the descriptor does not declare are ignored.
func Resolve(desc *types.ProviderDescriptor, projectName string, overrides map[string]string) (*types.ResolvedVariables, []string, error) {
	return ResolveWith(desc, projectName, func(spec types.VariableSpec, _ string) (string, error) {
		return overrides[spec.Name], nil
	})
}

// ResolveWith walks the descriptor's variables in declaration order. Each default is substituted
// with PROJECT_NAME and every variable resolved before it, then offered to ask. The returned
// warnings name placeholders that had no binding and were replaced with the empty string.
func ResolveWith(desc *types.ProviderDescriptor, projectName string, ask AskFunc) (*types.ResolvedVariables, []string, error) {
	resolved := types.NewResolvedVariables()
	var warnings []string

	for _, spec := range desc.Variables {
		bindings := NewBindings(projectName, resolved.Map())

		defaultValue, missing := Substitute(spec.Default, bindings)
		warnings = append(warnings, unboundWarnings(spec.Name, missing)...)

		answer, err := ask(spec, defaultValue)
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to resolve variable %s: %w", spec.Name, err)
		}

		value := defaultValue
		if strings.TrimSpace(answer) != "" {
			value, missing = Substitute(strings.TrimSpace(answer), bindings)
			warnings = append(warnings, unboundWarnings(spec.Name, missing)...)
		}

		if err := resolved.Set(spec.Name, value); err != nil {
			return nil, warnings, err
		}
	}

	return resolved, warnings, nil
}

// ResolveBackend substitutes the settings of one backend type of the descriptor, recursing into
// nested maps and lists.
func ResolveBackend(desc *types.ProviderDescriptor, backendType, projectName string, variables *types.ResolvedVariables) (map[string]any, []string, error) {
	settings, ok := desc.Backend[backendType]
	if !ok {
		return nil, nil, fmt.Errorf("provider %s does not declare backend %q", desc.ID, backendType)
	}

	out, missing := SubstituteValue(settings, NewBindings(projectName, variables.Map()))
	resolved, _ := out.(map[string]any)

	return resolved, unboundWarnings("backend."+backendType, missing), nil
}

func unboundWarnings(context string, missing []string) []string {
	warnings := make([]string, 0, len(missing))
	for _, name := range missing {
		warnings = append(warnings, fmt.Sprintf("%s: placeholder {{%s}} has no value and was left empty", context, name))
	}
	return warnings
}
