package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"numlens/internal/annotate"
	"numlens/internal/report"
)

var dotCmd = &cobra.Command{
	Use:   "dot [flags] report",
	Short: "Print control-flow graphs of intermediates",
	Long: `Dot prints the Graphviz graph of every requested intermediate that can
render one. Without --ir all intermediates of the report are considered.`,
	Args: cobra.ExactArgs(1),
	RunE: runDot,
}

func init() {
	dotCmd.Flags().StringArray("ir", nil, "intermediate to render (repeatable)")
	dotCmd.Flags().String("out-dir", "", "write each graph to <out-dir>/<name>.dot instead of stdout")
}

func runDot(cmd *cobra.Command, args []string) error {
	names, err := cmd.Flags().GetStringArray("ir")
	if err != nil {
		return fmt.Errorf("failed to get ir flag: %w", err)
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}

	r, err := report.Open(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p := r.Program()
	if len(names) == 0 {
		names = p.IntermediateNames()
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	written := 0
	for g, err := range annotate.SelectDot(p, names) {
		if err != nil {
			return err
		}
		written++
		if outDir == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", g.Name, g.Graph)
			continue
		}
		file, err := dotFileName(g.Name)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, file)
		if err := os.WriteFile(path, []byte(g.Graph+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), path)
	}
	if written == 0 {
		return fmt.Errorf("%s: no intermediate provides a dot graph", args[0])
	}
	return nil
}

// dotFileName maps an intermediate name to a file inside --out-dir. Names
// come from the report, so anything that could leave the directory is
// rejected.
func dotFileName(name string) (string, error) {
	file := name + ".dot"
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || !filepath.IsLocal(file) {
		return "", fmt.Errorf("intermediate name %q cannot be used as a file name", name)
	}
	return file, nil
}
