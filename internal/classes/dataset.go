// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classes

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// DatasetFileName is the name of the dataset descriptor written by WriteDataset.
const DatasetFileName = "data.yaml"

// Dataset is the Ultralytics-style dataset descriptor. Names is keyed by
// class id so the id of every class is explicit in the file.
type Dataset struct {
	Path  string         `yaml:"path"`
	Train string         `yaml:"train"`
	Val   string         `yaml:"val"`
	NC    int            `yaml:"nc"`
	Names map[int]string `yaml:"names"`
}

// NewDataset builds a descriptor for the index. root is the dataset root
// and images is the image directory; train and val both point at images
// since the converter does not split the data.
func NewDataset(x *Index, root, images string) Dataset {
	names := make(map[int]string, x.Len())
	for id, name := range x.names {
		names[id] = name
	}
	return Dataset{
		Path:  root,
		Train: images,
		Val:   images,
		NC:    x.Len(),
		Names: names,
	}
}

// WriteDataset writes d to dir/data.yaml and returns the path written.
func WriteDataset(dir string, d Dataset) (string, error) {
	data, err := yaml.Marshal(&d)
	if err != nil {
		return "", fmt.Errorf("marshaling dataset: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating dataset directory: %w", err)
	}
	path := filepath.Join(dir, DatasetFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
