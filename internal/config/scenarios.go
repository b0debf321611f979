package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScenarioInfo summarizes one scenario file in a directory listing.
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	File        string `json:"file"`
	SourcesFile string `json:"sources_file,omitempty"`
}

// ListScenarios returns every *.yaml / *.yml scenario in dir, sorted by ID.
// Files that fail to parse are skipped and reported in skipped.
func ListScenarios(dir string) (infos []ScenarioInfo, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	infos = []ScenarioInfo{}
	skipped = map[string]error{}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		c, err := LoadUnchecked(path)
		if err != nil {
			skipped[e.Name()] = err
			continue
		}
		infos = append(infos, ScenarioInfo{
			ID:          strings.TrimSuffix(e.Name(), ext),
			Name:        c.Name,
			File:        e.Name(),
			SourcesFile: c.SourcesFile,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, skipped, nil
}

// ScenarioPath maps a scenario ID onto a file in dir. IDs containing path
// separators are rejected.
func ScenarioPath(dir, id string) (string, bool) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", false
	}
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, id+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
