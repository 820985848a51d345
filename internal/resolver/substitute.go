package resolver

import (
	"regexp"
	"slices"
	"strings"

	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

// ProjectNameToken is bound for every substitution.
const ProjectNameToken = "PROJECT_NAME"

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Bindings maps placeholder names to their replacement text.
type Bindings map[string]string

func NewBindings(projectName string, variables map[string]string) Bindings {
	b := make(Bindings, len(variables)+1)
	for k, v := range variables {
		b[k] = v
	}
	b[ProjectNameToken] = projectName
	return b
}

// Substitute replaces every {{NAME}} token in template in a single left to right pass. Replacement
// text is never rescanned, so a value containing braces cannot trigger further substitution.
// Unbound names resolve to the empty string and are returned in first-seen order.
func Substitute(template string, bindings Bindings) (string, []string) {
	if !strings.Contains(template, "{{") {
		return template, nil
	}

	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := placeholderPattern.FindStringSubmatch(token)[1]
		value, ok := bindings[name]
		if !ok && !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
		return value
	})

	return out, missing
}

// SubstituteValue applies Substitute to every string reachable from v through maps and slices.
// Map keys are visited in sorted order. Other scalar types pass through unchanged and the input
// is never mutated.
func SubstituteValue(v any, bindings Bindings) (any, []string) {
	var missing []string
	note := func(names []string) {
		for _, n := range names {
			if !slices.Contains(missing, n) {
				missing = append(missing, n)
			}
		}
	}

	var walk func(any) any
	walk = func(v any) any {
		switch val := v.(type) {
		case string:
			out, m := Substitute(val, bindings)
			note(m)
			return out
		case map[string]any:
			out := make(map[string]any, len(val))
			for _, k := range utils.SortedKeys(val) {
				out[k] = walk(val[k])
			}
			return out
		case []any:
			out := make([]any, len(val))
			for i, item := range val {
				out[i] = walk(item)
			}
			return out
		default:
			return v
		}
	}

	return walk(v), missing
}

// ContainsPlaceholder reports whether s still holds a {{NAME}} token.
func ContainsPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}
