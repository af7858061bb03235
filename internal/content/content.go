// Package content serves the static educational resource catalogue.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

// Catalogue is the full resource listing, grouped by category.
type Catalogue struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

type Category struct {
	Name  string     `yaml:"name" json:"name"`
	Items []Resource `yaml:"items" json:"items"`
}

type Resource struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Link        string `yaml:"link" json:"link"`
}

// Parse decodes a catalogue document and rejects empty categories or
// untitled items.
func Parse(data []byte) (Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalogue{}, fmt.Errorf("parsing resources: %w", err)
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return Catalogue{}, fmt.Errorf("parsing resources: category without a name")
		}
		if len(cat.Items) == 0 {
			return Catalogue{}, fmt.Errorf("parsing resources: category %q has no items", cat.Name)
		}
		for _, item := range cat.Items {
			if item.Title == "" {
				return Catalogue{}, fmt.Errorf("parsing resources: untitled item in %q", cat.Name)
			}
		}
	}
	return c, nil
}

// Resources returns the embedded catalogue, parsed on first use.
var Resources = sync.OnceValues(func() (Catalogue, error) {
	return Parse(resourcesYAML)
})
