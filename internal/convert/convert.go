// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the Pascal VOC to YOLO batch: it reads each
// annotation, resolves the paired image, writes a label file, and records
// files that could not be converted in the error logs.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/voc2yolo/internal/classes"
	"github.com/pdiddy/voc2yolo/internal/imagesize"
	"github.com/pdiddy/voc2yolo/internal/voc"
	"github.com/pdiddy/voc2yolo/internal/yolo"
	"github.com/pdiddy/voc2yolo/pkg/types"
)

const annotationExt = ".xml"

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	NoImage   int
	Failed    int
	Files     []types.FileResult
}

// Total returns the total number of annotation files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.NoImage + r.Failed
}

// HasFailures reports whether any annotation file was not converted.
func (r BatchResult) HasFailures() bool {
	return r.NoImage > 0 || r.Failed > 0
}

func (r *BatchResult) add(fr types.FileResult) {
	switch fr.Status {
	case types.FileConverted:
		r.Converted++
	case types.FileNoImage:
		r.NoImage++
	default:
		r.Failed++
	}
	r.Files = append(r.Files, fr)
}

// Converter converts annotation files one at a time, assigning class ids
// from a single Index shared by every file it converts.
type Converter struct {
	cfg    types.ConvertConfig
	prober imagesize.Prober
	index  *classes.Index
	w      io.Writer
}

// New creates a Converter. Progress lines are written to w.
func New(cfg types.ConvertConfig, prober imagesize.Prober, w io.Writer) *Converter {
	if w == nil {
		w = io.Discard
	}
	return &Converter{
		cfg:    cfg,
		prober: prober,
		index:  classes.New(),
		w:      w,
	}
}

// Classes returns the class index accumulated so far.
func (c *Converter) Classes() *classes.Index {
	return c.index
}

// ListAnnotations returns the *.xml files directly inside dir in lexical
// order (os.ReadDir sorts by name), which fixes the order class ids are
// assigned in.
func ListAnnotations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading annotation directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != annotationExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// ConvertFile converts the annotation at xmlPath. Failures are recorded in
// the error logs and reported in the returned result; they never abort the
// caller's batch.
func (c *Converter) ConvertFile(xmlPath string) types.FileResult {
	base := filepath.Base(xmlPath)
	res := types.FileResult{XMLFile: base}

	ann, err := voc.Read(xmlPath)
	if err != nil {
		res.Status = types.FileMalformed
		return c.fail(res, err)
	}
	res.Image = ann.Filename

	size, err := c.prober.Probe(imagesize.Resolve(c.cfg.ImageDir, ann.Filename))
	if err != nil {
		if errors.Is(err, imagesize.ErrNotFound) {
			res.Status = types.FileNoImage
			res.Error = err.Error()
			if lerr := logUnpaired(c.cfg.ErrorDir, stem(base)); lerr != nil {
				fmt.Fprintf(c.w, "warning: %v\n", lerr)
			}
			fmt.Fprintf(c.w, "no image:  %s (%s)\n", base, ann.Filename)
			return res
		}
		// Unreadable images are listed as unpaired too; the reason goes to FailedLog.
		res.Status = types.FileBadImage
		if lerr := logUnpaired(c.cfg.ErrorDir, stem(base)); lerr != nil {
			fmt.Fprintf(c.w, "warning: %v\n", lerr)
		}
		return c.fail(res, err)
	}

	// New classes are only added once the label file is on disk.
	tx := c.index.Begin()
	labels := make([]types.Label, len(ann.Objects))
	for i, obj := range ann.Objects {
		labels[i] = yolo.Normalize(tx.ID(obj.Name), obj.Box, size)
	}

	labelPath := yolo.LabelPath(c.cfg.LabelDir, ann.Filename)
	if err := yolo.WriteFile(labelPath, labels); err != nil {
		res.Status = types.FileWriteFailed
		return c.fail(res, err)
	}
	tx.Commit()

	res.Status = types.FileConverted
	res.LabelPath = labelPath
	res.Objects = len(labels)
	fmt.Fprintf(c.w, "converted: %s -> %s (%d objects)\n", base, filepath.Base(labelPath), len(labels))
	return res
}

func (c *Converter) fail(res types.FileResult, err error) types.FileResult {
	res.Error = err.Error()
	if lerr := logFailed(c.cfg.ErrorDir, stem(res.XMLFile), err); lerr != nil {
		fmt.Fprintf(c.w, "warning: %v\n", lerr)
	}
	fmt.Fprintf(c.w, "failed:    %s (%v)\n", res.XMLFile, err)
	return res
}

// ConvertBatch converts each path in order, printing per-file status to the
// converter's writer followed by a summary. It stops early only when ctx
// is cancelled, returning the partial result with ctx.Err().
func (c *Converter) ConvertBatch(ctx context.Context, paths []string) (BatchResult, error) {
	var result BatchResult
	for _, p := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		result.add(c.ConvertFile(p))
	}
	fmt.Fprintf(c.w, "\nBatch summary: %d converted, %d without image, %d failed (total: %d)\n",
		result.Converted, result.NoImage, result.Failed, result.Total())
	return result, nil
}

// Run executes the whole pipeline for the configured directories: it
// converts every annotation in XMLDir, then writes classes.txt and, when
// enabled, data.yaml.
func (c *Converter) Run(ctx context.Context) (types.RunReport, error) {
	report := types.RunReport{
		StartedAt: time.Now().UTC(),
		Config:    c.cfg,
	}

	paths, err := ListAnnotations(c.cfg.XMLDir)
	if err != nil {
		return report, err
	}

	for _, dir := range []string{c.cfg.LabelDir, c.cfg.ClassesDir, c.cfg.ErrorDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	result, err := c.ConvertBatch(ctx, paths)
	report.Files = result.Files
	report.Converted = result.Converted
	report.NoImage = result.NoImage
	report.Failed = result.Failed
	report.Classes = c.index.Names()
	if err != nil {
		return report, err
	}

	if _, err := c.index.WriteFile(c.cfg.ClassesDir); err != nil {
		return report, err
	}

	if c.cfg.DatasetYAML {
		ds := classes.NewDataset(c.index, datasetRoot(c.cfg), c.cfg.ImageDir)
		path, err := classes.WriteDataset(c.cfg.ClassesDir, ds)
		if err != nil {
			return report, err
		}
		fmt.Fprintf(c.w, "wrote %s\n", path)
	}

	report.FinishedAt = time.Now().UTC()
	return report, nil
}

// datasetRoot returns the absolute parent of the label directory, which is
// where Ultralytics expects the images/ and labels/ siblings to live.
func datasetRoot(cfg types.ConvertConfig) string {
	abs, err := filepath.Abs(cfg.LabelDir)
	if err != nil {
		return filepath.Dir(cfg.LabelDir)
	}
	return filepath.Dir(abs)
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
