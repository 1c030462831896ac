// Package jurisdictions loads fee catalogs and hands out one engine per jurisdiction.
package jurisdictions

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/angelmondragon/autocalc-backend/internal/scenario"
	pkgerrors "github.com/angelmondragon/autocalc-backend/pkg/errors"
)

//go:embed catalogs/*.yaml
var builtin embed.FS

// Registry is read-only after construction.
type Registry struct {
	engines     map[string]*scenario.Engine
	aliases     map[string]string
	defaultCode string
}

// NewRegistry indexes catalogs by code and name. Later catalogs replace earlier ones
// with the same code.
func NewRegistry(defaultCode string, catalogs ...*scenario.Catalog) (*Registry, error) {
	r := &Registry{
		engines: make(map[string]*scenario.Engine, len(catalogs)),
		aliases: make(map[string]string, len(catalogs)*2),
	}
	for _, catalog := range catalogs {
		if err := catalog.Validate(); err != nil {
			return nil, err
		}
		code := strings.ToUpper(strings.TrimSpace(catalog.Jurisdiction))
		r.engines[code] = scenario.NewEngine(catalog)
		r.aliases[normalizeKey(code)] = code
		if catalog.Name != "" {
			r.aliases[normalizeKey(catalog.Name)] = code
		}
	}

	code, ok := r.aliases[normalizeKey(defaultCode)]
	if !ok {
		return nil, fmt.Errorf("default jurisdiction %q has no catalog", defaultCode)
	}
	r.defaultCode = code
	return r, nil
}

// LoadDefault builds a registry from the embedded catalogs plus any YAML files in
// extraDir (ignored when empty).
func LoadDefault(defaultCode, extraDir string) (*Registry, error) {
	catalogs, err := LoadFS(builtin, "catalogs")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extraDir) != "" {
		extra, err := LoadFS(os.DirFS(extraDir), ".")
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, extra...)
	}
	return NewRegistry(defaultCode, catalogs...)
}

// LoadFS parses every .yaml/.yml file in dir, sorted by file name.
func LoadFS(fsys fs.FS, dir string) ([]*scenario.Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	catalogs := make([]*scenario.Catalog, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, pathJoin(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		catalog, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		catalogs = append(catalogs, catalog)
	}
	return catalogs, nil
}

// Engine returns the engine for a state code or name; blank input selects the default.
func (r *Registry) Engine(key string) (*scenario.Engine, error) {
	if r == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "jurisdiction registry unavailable")
	}
	if strings.TrimSpace(key) == "" {
		return r.engines[r.defaultCode], nil
	}
	code, ok := r.aliases[normalizeKey(key)]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no fee catalog for jurisdiction %q", key))
	}
	return r.engines[code], nil
}

// Catalog returns the catalog for a state code or name.
func (r *Registry) Catalog(key string) (*scenario.Catalog, error) {
	engine, err := r.Engine(key)
	if err != nil {
		return nil, err
	}
	return engine.Catalog(), nil
}

// DefaultCode is the jurisdiction used when callers do not name one.
func (r *Registry) DefaultCode() string {
	return r.defaultCode
}

// Codes lists the loaded jurisdiction codes in order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.engines))
	for code := range r.engines {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func pathJoin(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}
