package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"numlens/internal/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert in out",
	Short: "Re-encode a report as JSON, YAML or msgpack",
	Long: `Convert validates a report and writes it in the format selected by the
output extension (.json, .yaml, .yml, .mp, .msgpack).`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, outPath := args[0], args[1]
	codec, err := report.CodecFromPath(outPath)
	if err != nil {
		return err
	}
	r, err := report.Open(cmd.Context(), in)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(outPath), ".convert-*")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(f.Name())
	if err := report.Encode(f, r.Doc, codec); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", codec, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), outPath)
}
