// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus indicates the outcome of converting one annotation file.
type FileStatus string

const (
	FileConverted   FileStatus = "converted"
	FileNoImage     FileStatus = "no-image"
	FileBadImage    FileStatus = "bad-image"
	FileMalformed   FileStatus = "malformed"
	FileWriteFailed FileStatus = "write-failed"
)

// FileResult records what happened to a single annotation file.
type FileResult struct {
	// XMLFile is the base name of the annotation file (e.g. "a.xml").
	XMLFile string `json:"xml_file" yaml:"xml_file"`

	// Image is the image filename referenced by the annotation, if it was read.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// LabelPath is the label file written for a converted annotation.
	LabelPath string `json:"label_path,omitempty" yaml:"label_path,omitempty"`

	// Objects is the number of label lines written.
	Objects int `json:"objects" yaml:"objects"`

	Status FileStatus `json:"status" yaml:"status"`

	// Error describes the failure for any status other than FileConverted.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport summarizes one batch run.
type RunReport struct {
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	Config     ConvertConfig `json:"config" yaml:"config"`
	Converted  int           `json:"converted" yaml:"converted"`
	NoImage    int           `json:"no_image" yaml:"no_image"`
	Failed     int           `json:"failed" yaml:"failed"`
	Classes    []string      `json:"classes" yaml:"classes"`
	Files      []FileResult  `json:"files" yaml:"files"`
}
