//go:build mage

// Package main contains Mage build targets for voc2yolo developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// datasetDirs lists the working directories used by the Convert target.
var datasetDirs = []string{
	"dataset/annotations",
	"dataset/images",
	"dataset/labels",
	"dataset/meta",
	"dataset/errors",
}

// Init creates the sample dataset directory layout.
func Init() error {
	for _, dir := range datasetDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Dataset directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "voc2yolo"
	cmdPkg  = "./cmd/voc2yolo"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	return build("", binName)
}

// BuildOpenCV compiles the CLI with the OpenCV image backend. Requires
// OpenCV development headers on the build machine.
func BuildOpenCV() error {
	return build("opencv", binName+"-opencv")
}

func build(tags, name string) error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, name)
	args := []string{"build", "-o", out}
	if tags != "" {
		args = append(args, "-tags", tags)
	}
	if err := sh.RunV("go", append(args, cmdPkg)...); err != nil {
		return fmt.Errorf("go %s: %w", strings.Join(args, " "), err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Convert builds the binary and converts the sample dataset created by Init.
func Convert() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName),
		"--xml_dir", datasetDirs[0],
		"--img_dir", datasetDirs[1],
		"--yolo_dir", datasetDirs[2],
		"--classes_txt_dir", datasetDirs[3],
		"--error_dir", datasetDirs[4],
		"--dataset-yaml",
	)
}

// Clean removes build output and generated labels.
func Clean() error {
	for _, dir := range []string{binDir, datasetDirs[2], datasetDirs[4]} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
