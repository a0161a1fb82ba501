// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the voc2yolo pipeline:
// parsed Pascal VOC annotations, normalized YOLO labels, per-file results,
// and the batch configuration.
package types

// Box is an axis-aligned rectangle in pixel coordinates.
type Box struct {
	XMin float64 `json:"xmin" yaml:"xmin"`
	YMin float64 `json:"ymin" yaml:"ymin"`
	XMax float64 `json:"xmax" yaml:"xmax"`
	YMax float64 `json:"ymax" yaml:"ymax"`
}

// Object is one annotated instance: a class name and its bounding box.
type Object struct {
	Name string `json:"name" yaml:"name"`
	Box  Box    `json:"box" yaml:"box"`
}

// Annotation holds the contents of a single Pascal VOC annotation file.
type Annotation struct {
	// Path is the annotation file the record was read from.
	Path string `json:"path" yaml:"path"`

	// Filename is the image file referenced by the annotation's <filename>.
	Filename string `json:"filename" yaml:"filename"`

	// Objects lists the annotated objects in document order.
	Objects []Object `json:"objects" yaml:"objects"`
}

// ImageSize is the pixel width and height of an image.
type ImageSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Label is one line of a YOLO label file. Coordinates are fractions of the
// image width and height.
type Label struct {
	ClassID int     `json:"class_id" yaml:"class_id"`
	XCenter float64 `json:"x_center" yaml:"x_center"`
	YCenter float64 `json:"y_center" yaml:"y_center"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
}
