package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/feasibility-cli/internal/catalog"
)

var optionsFormat string

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the plan fields and their accepted values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeOptions(cmd.OutOrStdout(), catalog.Fields(), optionsFormat)
	},
}

func init() {
	optionsCmd.Flags().StringVar(&optionsFormat, "format", "text", "output format: text, yaml or json")
	rootCmd.AddCommand(optionsCmd)
}

func writeOptions(w io.Writer, fields []catalog.Field, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(fields), "write json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return eris.Wrap(err, "write yaml")
		}
		return eris.Wrap(enc.Close(), "write yaml")
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range fields {
			name := f.Name
			if f.Optional {
				name += " (optional)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, f.Question)
			if f.Kind == catalog.KindAmount {
				fmt.Fprintf(tw, "\t  <number>\n")
			}
			for _, o := range f.Options {
				fmt.Fprintf(tw, "\t  %s\t%s\n", o.ID, o.Label)
			}
		}
		return eris.Wrap(tw.Flush(), "write options")
	default:
		return eris.Errorf("--format must be text, yaml or json, got %q", format)
	}
}
