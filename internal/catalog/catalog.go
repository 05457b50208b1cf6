// Package catalog is the static list of exercises a workout can reference
// by id.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

type Exercise struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	MuscleGroup string `yaml:"muscleGroup" json:"muscle_group"`
	Equipment   string `yaml:"equipment" json:"equipment"`
}

var (
	loadOnce sync.Once
	loaded   []Exercise
	byID     map[string]Exercise
	loadErr  error
)

func load() {
	var items []Exercise
	if err := yaml.Unmarshal(exercisesYAML, &items); err != nil {
		loadErr = fmt.Errorf("parse exercise catalog: %w", err)
		return
	}
	index := make(map[string]Exercise, len(items))
	for _, it := range items {
		if _, dup := index[it.ID]; dup {
			loadErr = fmt.Errorf("parse exercise catalog: duplicate id %q", it.ID)
			return
		}
		index[it.ID] = it
	}
	loaded = items
	byID = index
}

// List returns the catalog, optionally narrowed to one muscle group.
func List(muscleGroup string) ([]Exercise, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	group := strings.ToLower(strings.TrimSpace(muscleGroup))
	out := make([]Exercise, 0, len(loaded))
	for _, it := range loaded {
		if group == "" || it.MuscleGroup == group {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MuscleGroup != out[j].MuscleGroup {
			return out[i].MuscleGroup < out[j].MuscleGroup
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func Lookup(id string) (Exercise, bool) {
	loadOnce.Do(load)
	if loadErr != nil {
		return Exercise{}, false
	}
	it, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return it, ok
}
