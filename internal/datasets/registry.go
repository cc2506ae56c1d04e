package datasets

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"ner-explorer/internal/core"

	"gopkg.in/yaml.v2"
)

var ErrDatasetNotFound = errors.New("dataset not found")

const defaultDatasetType = "ner"

type Dataset struct {
	Name     string
	Location string
	Type     string
	Dialect  core.Dialect
	Scheme   core.TagScheme
}

// Registry is an ordered set of named datasets.
type Registry struct {
	datasets []Dataset
	byName   map[string]int
}

type registryFile struct {
	Datasets []struct {
		Name      string  `yaml:"name"`
		Location  string  `yaml:"location"`
		Type      string  `yaml:"type"`
		Delimiter string  `yaml:"delimiter"`
		Quote     *string `yaml:"quote"`
		Scheme    string  `yaml:"scheme"`
	} `yaml:"datasets"`
}

func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset registry %s: %w", path, err)
	}

	registry, err := ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing dataset registry %s: %w", path, err)
	}
	return registry, nil
}

func ParseRegistry(data []byte) (*Registry, error) {
	var raw registryFile
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}

	var datasets []Dataset
	for i, entry := range raw.Datasets {
		if entry.Name == "" {
			return nil, fmt.Errorf("dataset %d has no name", i)
		}
		if entry.Location == "" {
			return nil, fmt.Errorf("dataset '%s' has no location", entry.Name)
		}

		dialect := core.DefaultDialect
		if entry.Delimiter != "" {
			r, err := singleRune(entry.Delimiter)
			if err != nil {
				return nil, fmt.Errorf("dataset '%s' has invalid delimiter: %w", entry.Name, err)
			}
			dialect.Delimiter = r
		}
		if entry.Quote != nil {
			if *entry.Quote == "" {
				dialect.Quote = 0
			} else {
				r, err := singleRune(*entry.Quote)
				if err != nil {
					return nil, fmt.Errorf("dataset '%s' has invalid quote: %w", entry.Name, err)
				}
				dialect.Quote = r
			}
		}
		if dialect.Quote == dialect.Delimiter {
			return nil, fmt.Errorf("dataset '%s' uses the same character for delimiter and quote", entry.Name)
		}

		scheme, err := core.ParseTagScheme(entry.Scheme)
		if err != nil {
			return nil, fmt.Errorf("dataset '%s': %w", entry.Name, err)
		}

		datasetType := entry.Type
		if datasetType == "" {
			datasetType = defaultDatasetType
		}

		datasets = append(datasets, Dataset{
			Name:     entry.Name,
			Location: entry.Location,
			Type:     datasetType,
			Dialect:  dialect,
			Scheme:   scheme,
		})
	}

	return NewRegistry(datasets...)
}

func NewRegistry(datasets ...Dataset) (*Registry, error) {
	r := &Registry{byName: make(map[string]int, len(datasets))}
	for _, ds := range datasets {
		if _, ok := r.byName[ds.Name]; ok {
			return nil, fmt.Errorf("duplicate dataset name '%s'", ds.Name)
		}
		r.byName[ds.Name] = len(r.datasets)
		r.datasets = append(r.datasets, ds)
	}
	return r, nil
}

func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("expected a single character, got '%s'", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Names returns dataset names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.datasets))
	for i, ds := range r.datasets {
		names[i] = ds.Name
	}
	return names
}

func (r *Registry) List() []Dataset {
	return append([]Dataset(nil), r.datasets...)
}

func (r *Registry) Get(name string) (Dataset, error) {
	i, ok := r.byName[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: '%s'", ErrDatasetNotFound, name)
	}
	return r.datasets[i], nil
}
