// Package prompt stores the text/template prompts used to talk to the LLM.
// Templates live as <name>.tmpl files in one directory next to a templates.yaml
// manifest describing them. Files are read on every render so edits made
// through the web editor apply without a restart
package prompt

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"text/template"

	"sellerbot/internal/core/normalize"
	perr "sellerbot/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// Well known template names
const (
	Question       = "question"
	Review         = "review"
	ProductSummary = "product_summary"
)

const (
	ext          = ".tmpl"
	manifestFile = "templates.yaml"
)

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,63}$`)

// Entry describes one template
type Entry struct {
	Name        string `json:"name" yaml:"-"`
	Description string `json:"description,omitempty" yaml:"description"`
	Kind        string `json:"kind,omitempty" yaml:"kind"`
	Exists      bool   `json:"exists" yaml:"-"`
}

type manifest struct {
	Templates map[string]Entry `yaml:"templates"`
}

// Store reads and writes templates in a directory
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open returns a Store over dir, creating the directory when missing
func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = "templates"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "create templates dir %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory
func (s *Store) Dir() string { return s.dir }

// ValidName reports whether name can be used as a template name
func ValidName(name string) bool { return validName.MatchString(name) }

func (s *Store) path(name string) (string, error) {
	if !ValidName(name) {
		return "", perr.WithField(perr.InvalidArgf("invalid template name %q", name), "name")
	}
	return filepath.Join(s.dir, name+ext), nil
}

// Read returns the raw template source
func (s *Store) Read(name string) (string, error) {
	p, err := s.path(name)
	if err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", perr.NotFoundf("template %q not found", name)
	}
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "read template %q", name)
	}
	return string(b), nil
}

// Write stores content under name after checking that it parses
func (s *Store) Write(name, content string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if _, err := parse(name, content); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write template %q", name)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write template %q", name)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write template %q", name)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "write template %q", name)
	}
	return nil
}

// Render executes the named template with data and normalizes the result
func (s *Store) Render(name string, data any) (string, error) {
	src, err := s.Read(name)
	if err != nil {
		return "", err
	}
	t, err := parse(name, src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "render template %q", name)
	}
	return normalize.Text(buf.String()), nil
}

// List merges the manifest with the template files on disk, sorted by name.
// Manifest entries without a file are listed with Exists false
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	byName := map[string]Entry{}
	for name, e := range m.Templates {
		e.Name = name
		byName[name] = e
	}

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "list templates")
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ext)
		if !ValidName(name) {
			continue
		}
		e := byName[name]
		e.Name = name
		e.Exists = true
		byName[name] = e
	}

	out := make([]Entry, 0, len(byName))
	for _, e := range byName {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) readManifest() (manifest, error) {
	var m manifest
	b, err := os.ReadFile(filepath.Join(s.dir, manifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read %s", manifestFile)
	}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return m, perr.Wrapf(err, perr.ErrorCodeValidation, "parse %s", manifestFile)
	}
	return m, nil
}

func parse(name, src string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=zero").Funcs(funcs).Parse(src)
	if err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeValidation, "parse template %q", name), "content")
	}
	return t, nil
}

var funcs = template.FuncMap{
	"default": func(def string, v any) string {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
		return def
	},
	"join":  strings.Join,
	"trim":  strings.TrimSpace,
	"clean": normalize.Text,
}
