// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package voc reads Pascal VOC annotation files.
//
// Only the elements needed for detection labels are read: the top-level
// <filename> and each <object>'s <name> and <bndbox>. Everything else in
// the document (size, pose, truncated, difficult, parts) is ignored.
package voc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

// ErrMalformed is wrapped by every error describing an annotation that
// cannot be turned into labels.
var ErrMalformed = errors.New("malformed annotation")

type document struct {
	Filename *string  `xml:"filename"`
	Objects  []object `xml:"object"`
}

type object struct {
	Name   *string `xml:"name"`
	BndBox *bndbox `xml:"bndbox"`
}

type bndbox struct {
	XMin *string `xml:"xmin"`
	YMin *string `xml:"ymin"`
	XMax *string `xml:"xmax"`
	YMax *string `xml:"ymax"`
}

// Read parses the annotation file at path.
func Read(path string) (types.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("opening annotation %s: %w", path, err)
	}
	defer f.Close()

	ann, err := Decode(f)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("reading %s: %w", path, err)
	}
	ann.Path = path
	return ann, nil
}

// Decode parses a Pascal VOC document from r. The returned Annotation has
// an empty Path.
func Decode(r io.Reader) (types.Annotation, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return types.Annotation{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if doc.Filename == nil || strings.TrimSpace(*doc.Filename) == "" {
		return types.Annotation{}, fmt.Errorf("%w: missing <filename>", ErrMalformed)
	}

	ann := types.Annotation{
		Filename: strings.TrimSpace(*doc.Filename),
		Objects:  make([]types.Object, 0, len(doc.Objects)),
	}

	for i, o := range doc.Objects {
		obj, err := o.convert()
		if err != nil {
			return types.Annotation{}, fmt.Errorf("%w: object %d: %v", ErrMalformed, i, err)
		}
		ann.Objects = append(ann.Objects, obj)
	}

	return ann, nil
}

func (o object) convert() (types.Object, error) {
	if o.Name == nil || strings.TrimSpace(*o.Name) == "" {
		return types.Object{}, errors.New("missing <name>")
	}
	if o.BndBox == nil {
		return types.Object{}, errors.New("missing <bndbox>")
	}

	var box types.Box
	coords := []struct {
		tag string
		src *string
		dst *float64
	}{
		{"xmin", o.BndBox.XMin, &box.XMin},
		{"ymin", o.BndBox.YMin, &box.YMin},
		{"xmax", o.BndBox.XMax, &box.XMax},
		{"ymax", o.BndBox.YMax, &box.YMax},
	}
	for _, c := range coords {
		if c.src == nil {
			return types.Object{}, fmt.Errorf("missing <%s>", c.tag)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(*c.src), 64)
		if err != nil {
			return types.Object{}, fmt.Errorf("parsing <%s> %q: %v", c.tag, *c.src, err)
		}
		*c.dst = v
	}

	return types.Object{Name: strings.TrimSpace(*o.Name), Box: box}, nil
}
