package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Tree describes a category tree to import, typically from YAML:
//
//	areas:
//	  - name: Entwicklung
//	    color: "#3b82f6"
//	    fields:
//	      - name: Frontend
//	        activities: [React Development, Code Review]
type Tree struct {
	Areas []AreaSpec `yaml:"areas" json:"areas"`
}

// AreaSpec is one area with its fields.
type AreaSpec struct {
	Name   string      `yaml:"name"   json:"name"`
	Color  string      `yaml:"color"  json:"color"`
	Fields []FieldSpec `yaml:"fields" json:"fields"`
}

// FieldSpec is one field with its activity names.
type FieldSpec struct {
	Name       string   `yaml:"name"       json:"name"`
	Activities []string `yaml:"activities" json:"activities"`
}

// LoadTree reads a tree file. The format follows the file extension
// (.yaml, .yml, .json).
func LoadTree(path string) (*Tree, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seeder: tree file %s: %w", path, err)
	}
	var tree Tree
	if err := cleanenv.ReadConfig(path, &tree); err != nil {
		return nil, fmt.Errorf("seeder: read %s: %w", path, err)
	}
	return &tree, nil
}
