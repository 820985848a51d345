package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

//go:embed catalog/*.json
var builtinCatalog embed.FS

const builtinCatalogDir = "catalog"

var (
	catalogExtensions   = []string{".json", ".yaml", ".yml"}
	variableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	validate            = validator.New()
)

type Registry struct {
	descriptors []*types.ProviderDescriptor
	byID        map[string]*types.ProviderDescriptor
}

// MenuEntry is one selectable line of the provider menu.
type MenuEntry struct {
	Category   string
	Descriptor *types.ProviderDescriptor
}

// New builds a registry from already parsed descriptors, keeping the first of any duplicate IDs.
func New(descriptors ...*types.ProviderDescriptor) *Registry {
	r := &Registry{byID: make(map[string]*types.ProviderDescriptor)}
	for _, d := range descriptors {
		if _, exists := r.byID[d.ID]; exists {
			slog.Warn("duplicate provider descriptor ignored", "provider", d.ID)
			continue
		}
		r.descriptors = append(r.descriptors, d)
		r.byID[d.ID] = d
	}
	return r
}

// Load reads every catalog file in dir. A missing or empty directory is first seeded with the
// built-in catalog; if that write fails the built-in catalog is used from memory. Malformed files
// are skipped with a warning. A registry that ends up empty is a fatal setup error.
func Load(dir string) (*Registry, error) {
	fsys, root := fs.FS(os.DirFS(dir)), "."

	files, err := catalogFiles(fsys, root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &types.FatalSetupError{Reason: "cannot read provider catalog " + dir, Err: err}
	}

	if len(files) == 0 {
		slog.Warn("provider catalog is empty, writing built-in catalog", "dir", dir)
		if _, err := WriteBuiltinCatalog(dir, false); err != nil {
			slog.Warn("could not write built-in catalog, using it from memory", "dir", dir, "error", err)
			fsys, root = builtinCatalog, builtinCatalogDir
		}
		if files, err = catalogFiles(fsys, root); err != nil {
			return nil, &types.FatalSetupError{Reason: "cannot read provider catalog", Err: err}
		}
	}

	return loadFiles(fsys, root, files)
}

// Builtin returns the registry embedded in the binary.
func Builtin() (*Registry, error) {
	files, err := catalogFiles(builtinCatalog, builtinCatalogDir)
	if err != nil {
		return nil, err
	}
	return loadFiles(builtinCatalog, builtinCatalogDir, files)
}

// WriteBuiltinCatalog copies the embedded descriptors into dir. Existing files are kept unless
// overwrite is set. The names of written files are returned.
func WriteBuiltinCatalog(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	files, err := catalogFiles(builtinCatalog, builtinCatalogDir)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, name := range files {
		target := filepath.Join(dir, name)
		if _, err := os.Stat(target); err == nil && !overwrite {
			continue
		}

		data, err := builtinCatalog.ReadFile(builtinCatalogDir + "/" + name)
		if err != nil {
			return written, err
		}
		if err := persistence.WriteFileAtomic(target, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, name)
	}

	return written, nil
}

func (r *Registry) List() []*types.ProviderDescriptor {
	return r.descriptors
}

func (r *Registry) Len() int {
	return len(r.descriptors)
}

func (r *Registry) Get(id string) (*types.ProviderDescriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderNotFound, id)
	}
	return d, nil
}

func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, d := range r.descriptors {
		if c := d.DisplayCategory(); !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories
}

// Menu lists descriptors grouped by category, categories sorted by name and registry order kept
// within each category.
func (r *Registry) Menu() []MenuEntry {
	var entries []MenuEntry
	for _, category := range r.Categories() {
		for _, d := range r.descriptors {
			if d.DisplayCategory() == category {
				entries = append(entries, MenuEntry{Category: category, Descriptor: d})
			}
		}
	}
	return entries
}

func catalogFiles(fsys fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		for _, ext := range catalogExtensions {
			if strings.EqualFold(filepath.Ext(e.Name()), ext) {
				files = append(files, e.Name())
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadFiles(fsys fs.FS, root string, files []string) (*Registry, error) {
	var descriptors []*types.ProviderDescriptor
	for _, name := range files {
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, name)))
		if err != nil {
			slog.Warn("skipping unreadable provider descriptor", "file", name, "error", err)
			continue
		}

		id := strings.TrimSuffix(name, filepath.Ext(name))
		d, err := ParseDescriptor(id, data)
		if err != nil {
			slog.Warn("skipping malformed provider descriptor", "file", name, "error", err)
			continue
		}
		descriptors = append(descriptors, d)
	}

	if len(descriptors) == 0 {
		return nil, &types.FatalSetupError{Reason: "provider catalog has no usable descriptors", Err: types.ErrEmptyRegistry}
	}

	slog.Debug("loaded provider catalog", "providers", len(descriptors))
	return New(descriptors...), nil
}

type descriptorDocument struct {
	Name        string                      `yaml:"name" validate:"required"`
	Description string                      `yaml:"description"`
	Category    string                      `yaml:"category"`
	Variables   map[string]variableDocument `yaml:"variables"`
	Backend     map[string]map[string]any   `yaml:"backend"`
	Features    map[string]bool             `yaml:"features"`
}

type variableDocument struct {
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

// ParseDescriptor decodes one catalog file. JSON and YAML are both accepted; variable declaration
// order is taken from the document.
func ParseDescriptor(id string, data []byte) (*types.ProviderDescriptor, error) {
	if !variableNamePattern.MatchString(strings.ReplaceAll(id, "-", "_")) {
		return nil, fmt.Errorf("invalid provider id %q", id)
	}

	var doc descriptorDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid descriptor: %w", err)
	}

	descriptor := &types.ProviderDescriptor{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		Category:    doc.Category,
		Backend:     doc.Backend,
		Features:    doc.Features,
	}
	if descriptor.Category == "" {
		descriptor.Category = types.DefaultCategory
	}
	if descriptor.Backend == nil {
		descriptor.Backend = map[string]map[string]any{}
	}

	for _, name := range variableOrder(data, doc.Variables) {
		if !variableNamePattern.MatchString(name) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		v := doc.Variables[name]
		descriptor.Variables = append(descriptor.Variables, types.VariableSpec{
			Name:        name,
			Default:     scalarString(v.Default),
			Description: v.Description,
		})
	}

	return descriptor, nil
}

// variableOrder recovers the declaration order of the variables mapping, falling back to sorted
// names if the document cannot be read as an ordered map.
func variableOrder(data []byte, variables map[string]variableDocument) []string {
	var ordered yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &ordered, yaml.UseOrderedMap()); err == nil {
		for _, item := range ordered {
			if fmt.Sprint(item.Key) != "variables" {
				continue
			}
			vars, ok := item.Value.(yaml.MapSlice)
			if !ok {
				break
			}
			names := make([]string, 0, len(vars))
			for _, v := range vars {
				names = append(names, fmt.Sprint(v.Key))
			}
			if len(names) == len(variables) {
				return names
			}
		}
	}

	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func scalarString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
