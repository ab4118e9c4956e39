package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

const (
	scriptsDir = "scripts"
	stylesDir  = "styles"
)

// Manifest maps a page section to the script and style URLs it includes.
type Manifest struct {
	Scripts map[string][]string
	Styles  map[string][]string
}

// BuildManifest scans scripts/<section>/ and styles/<section>/ in fsys once.
// Sections without a directory get no entries.
func BuildManifest(fsys fs.FS, sections []string) (Manifest, error) {
	m := Manifest{
		Scripts: make(map[string][]string, len(sections)),
		Styles:  make(map[string][]string, len(sections)),
	}

	for _, section := range sections {
		scripts, err := listFiles(fsys, path.Join(scriptsDir, section))
		if err != nil {
			return Manifest{}, err
		}
		styles, err := listFiles(fsys, path.Join(stylesDir, section))
		if err != nil {
			return Manifest{}, err
		}

		m.Scripts[section] = scripts
		m.Styles[section] = styles
	}

	return m, nil
}

// ScriptsFor returns the script URLs of section, never nil.
func (m Manifest) ScriptsFor(section string) []string {
	if list, ok := m.Scripts[section]; ok && list != nil {
		return list
	}
	return []string{}
}

// StylesFor returns the style URLs of section, never nil.
func (m Manifest) StylesFor(section string) []string {
	if list, ok := m.Styles[section]; ok && list != nil {
		return list
	}
	return []string{}
}

func listFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		urls = append(urls, path.Join(URLPrefix, dir, entry.Name()))
	}
	sort.Strings(urls)

	return urls, nil
}
