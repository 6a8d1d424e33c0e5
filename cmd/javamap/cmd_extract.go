package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javamap/config"
	"github.com/dhamidi/javamap/format"
	"github.com/dhamidi/javamap/scan"
)

func newExtractCmd() *cobra.Command {
	var configFile string
	var output string
	var workers int
	var pretty bool
	var exclude []string

	cmd := &cobra.Command{
		Use:   "extract <dir>",
		Short: "Scan a directory tree and emit one JSON document per top-level type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]

			cfg, err := config.Load(root, configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Pretty = pretty
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Exclude = exclude
			}

			result, err := scan.Run(cmd.Context(), scan.Options{
				Root:    root,
				Exclude: cfg.Exclude,
				Workers: cfg.Workers,
			})
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}

			var out io.Writer = os.Stdout
			if cfg.Output != "" && cfg.Output != "-" {
				f, err := os.Create(cfg.Output)
				if err != nil {
					return fmt.Errorf("create %s: %w", cfg.Output, err)
				}
				defer f.Close()
				out = f
			}

			encoder := format.NewJSONEncoder(out)
			if cfg.Pretty {
				encoder = format.NewIndentedJSONEncoder(out)
			}
			if err := encoder.Encode(result.Documents); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if len(result.Errors) > 0 {
				fmt.Fprintf(os.Stderr, "%d file(s) skipped due to errors\n", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file (default: javamap.yaml in <dir>)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of parallel file workers")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "directory names to skip")

	return cmd
}
