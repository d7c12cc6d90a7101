package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"numlens/internal/highlight"
	"numlens/internal/trace"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [flags] file",
	Short: "Syntax-highlight Python or LLVM IR",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().String("lang", "", "source language (python|llvm); guessed from the extension when empty")
	highlightCmd.Flags().String("output", "console", "output format (html|console)")
	highlightCmd.Flags().Bool("inline-css", false, "emit inline styles instead of CSS classes in HTML")
	highlightCmd.Flags().Bool("stylesheet", false, "print the CSS for class-based HTML and exit")
	highlightCmd.Flags().String("style", "", "chroma style (overrides numlens.toml)")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	langFlag, err := flags.GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	outputFlag, err := flags.GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	inlineCSS, err := flags.GetBool("inline-css")
	if err != nil {
		return fmt.Errorf("failed to get inline-css flag: %w", err)
	}
	stylesheet, err := flags.GetBool("stylesheet")
	if err != nil {
		return fmt.Errorf("failed to get stylesheet flag: %w", err)
	}
	style, err := flags.GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}
	if style == "" {
		style = cfg.Highlight.Style
	}

	h := highlight.Probe(highlight.Options{
		Style:   style,
		Tracer:  trace.FromContext(cmd.Context()),
		Warning: cmd.ErrOrStderr(),
	})
	if stylesheet {
		return h.StyleSheet(cmd.OutOrStdout())
	}

	if langFlag == "" {
		langFlag = guessLanguage(args[0])
	}
	lang, err := highlight.ParseLanguage(langFlag)
	if err != nil {
		return err
	}
	out, err := highlight.ParseOutput(outputFlag)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}
	text, err := h.Lex(string(code), lang, out, inlineCSS)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// guessLanguage maps a file extension to a language name.
func guessLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ll", ".llvm":
		return string(highlight.LangLLVM)
	default:
		return string(highlight.LangPython)
	}
}
