package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daniilsolovey/news-admin/internal/assets"
)

const (
	skeletonPath = "skeleton/skeleton.html"
	sectionFile  = "index.html"

	homeSection = "index"
	homeCurrent = "home"
	homeTitle   = "Home"
)

// Page wraps section data that is rendered inside the site skeleton. Any
// other value passed to Render is executed by the section template alone.
type Page struct {
	// Title overrides the title derived from the section name.
	Title    string
	Username string
	Data     any
}

// skeletonData is what skeleton/skeleton.html is executed with.
type skeletonData struct {
	Username string
	Current  string
	Section  string
	Title    string
	Content  template.HTML
	Scripts  []string
	Styles   []string
}

// Renderer is an echo.Renderer over the templates of fsys.
type Renderer struct {
	skeleton *template.Template
	sections map[string]*template.Template
	manifest assets.Manifest
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02 Jan, Monday")
	},
	"datetime": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

// New parses skeleton/skeleton.html and every <section>/index.html of fsys.
// The root index.html is the "index" section.
func New(fsys fs.FS, manifest assets.Manifest) (*Renderer, error) {
	skeleton, err := template.New(path.Base(skeletonPath)).Funcs(funcs).ParseFS(fsys, skeletonPath)
	if err != nil {
		return nil, fmt.Errorf("parse skeleton: %w", err)
	}

	r := &Renderer{
		skeleton: skeleton,
		sections: make(map[string]*template.Template),
		manifest: manifest,
	}

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != sectionFile {
			return nil
		}

		section := path.Dir(p)
		if section == "." {
			section = homeSection
		}

		t, err := template.New(sectionFile).Funcs(funcs).ParseFS(fsys, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		r.sections[section] = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Sections returns the names of all parsed sections, sorted.
func (r *Renderer) Sections() []string {
	names := make([]string, 0, len(r.sections))
	for name := range r.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SetManifest replaces the script and style manifest.
func (r *Renderer) SetManifest(m assets.Manifest) {
	r.manifest = m
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.sections[name]
	if !ok {
		return fmt.Errorf("render: unknown section %q", name)
	}

	page, ok := data.(Page)
	if !ok {
		return t.Execute(w, data)
	}

	var content bytes.Buffer
	if err := t.Execute(&content, page.Data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	return r.skeleton.Execute(w, skeletonData{
		Username: page.Username,
		Current:  current(name),
		Section:  name,
		Title:    title(name, page.Title),
		Content:  template.HTML(content.String()),
		Scripts:  r.manifest.ScriptsFor(name),
		Styles:   r.manifest.StylesFor(name),
	})
}

func current(section string) string {
	if section == homeSection {
		return homeCurrent
	}
	return section
}

func title(section, override string) string {
	switch {
	case section == homeSection:
		return homeTitle
	case override != "":
		return override
	}

	return cases.Title(language.English).String(path.Base(section))
}
