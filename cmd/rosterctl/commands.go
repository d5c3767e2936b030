package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/minoru856-crypto/ai-shigeki/internal/core"
	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

type extractOptions struct {
	synonymsFile string
	scanRows     int
	format       string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterctl",
		Short:         "Inspect employee roster files offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newSynonymsCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract employee records from a CSV, TSV or XLSX file",
		Long: `Extract runs the same header detection and row extraction as the
server import and prints the result without storing anything.

Formats:
  json     full result with diagnostics (default)
  context  the plain-text block handed to the answer model
  table    one aligned row per employee`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.synonymsFile, "synonyms", "", "YAML file extending the header synonym lists")
	cmd.Flags().IntVar(&opts.scanRows, "scan-rows", roster.DefaultHeaderScanRows, "Leading rows searched for the header")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json, context or table")
	return cmd
}

func newSynonymsCmd() *cobra.Command {
	var synonymsFile string

	cmd := &cobra.Command{
		Use:   "synonyms",
		Short: "Print the effective header synonym lists as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			syn, err := loadSynonyms(synonymsFile)
			if err != nil {
				return err
			}
			out, err := syn.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&synonymsFile, "synonyms", "", "YAML file to merge onto the built-in lists")
	return cmd
}

func loadSynonyms(path string) (roster.Synonyms, error) {
	if path == "" {
		return roster.DefaultSynonyms(), nil
	}
	return roster.LoadSynonyms(path)
}

func runExtract(w io.Writer, path string, opts extractOptions) error {
	switch opts.format {
	case "json", "context", "table":
	default:
		return fmt.Errorf("unknown format %q (want json, context or table)", opts.format)
	}

	syn, err := loadSynonyms(opts.synonymsFile)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}

	res, err := roster.NewExtractor(syn, opts.scanRows).Extract(data, filepath.Base(path))
	if err != nil {
		return err
	}

	switch opts.format {
	case "context":
		_, err = io.WriteString(w, core.FormatEmployeeContext(res.Employees))
		return err
	case "table":
		return writeTable(w, res)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
}

func writeTable(w io.Writer, res *roster.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# encoding=%s header_row=%d detected=%v employees=%d\n",
		res.Encoding, res.HeaderRow, res.HeaderDetected, len(res.Employees))
	fmt.Fprintln(tw, "CODE\tNAME\tDEPARTMENT\tROLE")
	for _, e := range res.Employees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Code, e.Name, e.Department, e.Role)
	}
	return tw.Flush()
}
