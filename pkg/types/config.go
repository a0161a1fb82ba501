// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImageBackend selects how image dimensions are read.
type ImageBackend string

const (
	// BackendConfig reads dimensions from the image header only.
	BackendConfig ImageBackend = "config"
	// BackendOriented decodes the image and applies its EXIF orientation.
	BackendOriented ImageBackend = "oriented"
	// BackendOpenCV reads the image through OpenCV (requires the opencv build tag).
	BackendOpenCV ImageBackend = "opencv"
)

// ConvertConfig holds settings for a conversion batch.
type ConvertConfig struct {
	// XMLDir is the directory scanned for *.xml annotation files.
	XMLDir string `json:"xml_dir" yaml:"xml_dir"`

	// ImageDir is the directory holding the images referenced by annotations.
	ImageDir string `json:"img_dir" yaml:"img_dir"`

	// LabelDir receives one YOLO label file per converted image.
	LabelDir string `json:"yolo_dir" yaml:"yolo_dir"`

	// ClassesDir receives classes.txt (and data.yaml when enabled).
	ClassesDir string `json:"classes_txt_dir" yaml:"classes_txt_dir"`

	// ErrorDir receives the unpaired and failed annotation logs.
	ErrorDir string `json:"error_dir" yaml:"error_dir"`

	// ImageBackend selects the image prober (default "config").
	ImageBackend ImageBackend `json:"image_backend" yaml:"image_backend"`

	// DatasetYAML enables writing data.yaml next to classes.txt.
	DatasetYAML bool `json:"dataset_yaml" yaml:"dataset_yaml"`
}
