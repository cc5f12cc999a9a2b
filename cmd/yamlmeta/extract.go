package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yamlmeta/internal/dump"
)

func newExtractCommand(root *rootOptions) *cobra.Command {
	var (
		output string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "extract [packages...]",
		Short: "Write a model document for every annotated type",
		Example: `  yamlmeta extract ./...
  yamlmeta extract -c yamlmeta.yml --output ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(args)
			if err != nil {
				return err
			}

			if output != "" {
				cfg.Output = output
			}

			logger, err := newLogger(root.verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			res, err := root.extract(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			printDiagnostics(cmd.ErrOrStderr(), res.program.Diagnostics)

			docs := make([]*dump.Document, 0, len(res.metas))
			for _, t := range res.metas {
				d, err := dump.New(res.program.Graph, t)
				if err != nil {
					return err
				}

				docs = append(docs, d)
			}

			files, err := dump.Render(docs)
			if err != nil {
				return err
			}

			if stdout {
				for _, f := range files[:len(docs)] {
					if _, err := cmd.OutOrStdout().Write(f.Content); err != nil {
						return err
					}
				}

				return nil
			}

			if err := dump.WriteFiles(files, cfg.Output); err != nil {
				return err
			}

			logger.Info("wrote models", zap.Int("types", len(docs)), zap.String("output", cfg.Output))
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "wrote %d models to %s\n", len(docs), cfg.Output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory, overrides the config file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print documents instead of writing files")

	return cmd
}
