// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the voc2yolo CLI, which converts a
// directory of Pascal VOC annotations into YOLO label files.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/voc2yolo/internal/convert"
	"github.com/pdiddy/voc2yolo/internal/imagesize"
	"github.com/pdiddy/voc2yolo/internal/ledger"
	"github.com/pdiddy/voc2yolo/internal/report"
	"github.com/pdiddy/voc2yolo/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// requiredKeys are the directory settings every conversion needs. Each may
// come from a flag, a VOC2YOLO_* environment variable, or the config file.
var requiredKeys = []string{"xml_dir", "img_dir", "yolo_dir", "classes_txt_dir", "error_dir"}

// rootCmd converts annotations when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "voc2yolo",
	Short: "Convert Pascal VOC annotations to YOLO labels",
	Long: `voc2yolo reads every *.xml Pascal VOC annotation in --xml_dir, looks up
the image each one references in --img_dir, and writes a YOLO label file
per image to --yolo_dir. Class ids are assigned in first-seen order and
written to classes.txt in --classes_txt_dir.

Annotations whose image is missing are listed in
xmlfiles_with_no_paired.txt in --error_dir; other failures are listed in
xmlfiles_with_errors.txt. A failed file never stops the batch.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./voc2yolo.yaml or ~/.config/voc2yolo/voc2yolo.yaml)")

	rootCmd.Flags().String("xml_dir", "", "directory with Pascal VOC *.xml files (required)")
	rootCmd.Flags().String("img_dir", "", "directory with the images referenced by the annotations (required)")
	rootCmd.Flags().String("yolo_dir", "", "directory for YOLO label files (required)")
	rootCmd.Flags().String("classes_txt_dir", "", "directory for classes.txt (required)")
	rootCmd.Flags().String("error_dir", "", "directory for the unpaired and failed annotation logs (required)")
	rootCmd.Flags().String("image-backend", string(types.BackendConfig), "image size reader: config (header only, ignores EXIF rotation), oriented, or opencv")
	rootCmd.Flags().Bool("dataset-yaml", false, "also write data.yaml next to classes.txt")
	rootCmd.Flags().String("report", "", "write a run report to this path (.yaml, .yml, or .json)")
	rootCmd.Flags().String("ledger", "", "record the run in this SQLite history database")
	rootCmd.Flags().Bool("quiet", false, "suppress per-file progress output")

	for _, key := range requiredKeys {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(key))
	}
	viper.BindPFlag("image_backend", rootCmd.Flags().Lookup("image-backend"))
	viper.BindPFlag("dataset_yaml", rootCmd.Flags().Lookup("dataset-yaml"))
	viper.BindPFlag("report", rootCmd.Flags().Lookup("report"))
	viper.BindPFlag("ledger", rootCmd.Flags().Lookup("ledger"))
	viper.BindPFlag("quiet", rootCmd.Flags().Lookup("quiet"))
}

func initConfig() {
	// Variables already set in the environment win over .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("voc2yolo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "voc2yolo"))
		}
	}

	viper.SetEnvPrefix("VOC2YOLO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// convertConfig assembles the batch settings from viper and fails if any
// required directory is unset.
func convertConfig(v *viper.Viper) (types.ConvertConfig, error) {
	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, fmt.Sprintf("%q", key))
		}
	}
	if len(missing) > 0 {
		return types.ConvertConfig{}, fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}

	return types.ConvertConfig{
		XMLDir:       v.GetString("xml_dir"),
		ImageDir:     v.GetString("img_dir"),
		LabelDir:     v.GetString("yolo_dir"),
		ClassesDir:   v.GetString("classes_txt_dir"),
		ErrorDir:     v.GetString("error_dir"),
		ImageBackend: types.ImageBackend(v.GetString("image_backend")),
		DatasetYAML:  v.GetBool("dataset_yaml"),
	}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertConfig(viper.GetViper())
	if err != nil {
		return err
	}

	prober, err := imagesize.New(cfg.ImageBackend)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if viper.GetBool("quiet") {
		out = io.Discard
	}

	rep, err := convert.New(cfg, prober, out).Run(cmd.Context())
	if err != nil {
		return err
	}

	if path := viper.GetString("report"); path != "" {
		if err := report.Write(path, rep); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(out, "wrote %s\n", path)
	}

	if path := viper.GetString("ledger"); path != "" {
		l, err := ledger.Open(path)
		if err != nil {
			return err
		}
		defer l.Close()

		id, err := l.Record(cmd.Context(), rep)
		if err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
		fmt.Fprintf(out, "recorded run %d in %s\n", id, path)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
