package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javamap/format"
	"github.com/dhamidi/javamap/java"
)

func newParseCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single .java file and dump its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			models, err := java.TypeModelsFromSource(cmd.Context(), data, filename)
			if err != nil {
				return fmt.Errorf("parse %s: %w", filename, err)
			}

			docs := make([]*java.Document, 0, len(models))
			for _, model := range models {
				docs = append(docs, java.BuildDocument(model))
			}

			encoder := format.NewJSONEncoder(os.Stdout)
			if pretty {
				encoder = format.NewIndentedJSONEncoder(os.Stdout)
			}
			if err := encoder.Encode(docs); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", true, "indent JSON output")

	return cmd
}
