package utils

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"
)

var templateFuncs = template.FuncMap{
	// shell-quotes a value for safe interpolation into generated scripts
	"quote": func(s string) string { return shellquote.Join(s) },
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// RenderTemplate executes an embedded Go template.
func RenderTemplate(fsys fs.FS, templatePath string, data any) (string, error) {
	content, err := fs.ReadFile(fsys, templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template file: %w", err)
	}

	tmpl, err := template.New(path.Base(templatePath)).Funcs(templateFuncs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
