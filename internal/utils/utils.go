package utils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultProjectName = "my-project"

// sets flag values from corresponding environment variables if flags weren't explicitly provided
func BindEnvToFlags(cmd *cobra.Command) error {
	v := viper.New()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// e.g., "catalog-dir" -> "CATALOG_DIR"
		envVarName := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		if err := v.BindEnv(f.Name, envVarName); err != nil {
			bindErr = err
			return
		}

		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
				bindErr = fmt.Errorf("invalid value for %s from environment: %w", envVarName, err)
			}
		}
	})

	return bindErr
}

// SanitizeProjectName reduces free-form input to letters, digits, '-' and '_'. Whitespace becomes
// '-', any other character is dropped, runs of separators collapse to their first character and
// leading or trailing separators are trimmed. Input that sanitizes to nothing yields
// DefaultProjectName. Applying it twice gives the same result as applying it once.
func SanitizeProjectName(input string) string {
	var b strings.Builder
	lastWasSeparator := false

	for _, r := range strings.TrimSpace(input) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastWasSeparator = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			if lastWasSeparator || b.Len() == 0 {
				continue
			}
			if unicode.IsSpace(r) {
				r = '-'
			}
			b.WriteRune(r)
			lastWasSeparator = true
		}
	}

	name := strings.TrimRight(b.String(), "-_")
	if name == "" {
		return DefaultProjectName
	}
	return name
}

var sensitiveNameParts = []string{"token", "secret", "password", "api_key", "apikey", "access_key", "private_key"}

// IsSensitiveName reports whether a variable name looks like it holds a credential.
func IsSensitiveName(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}
