package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"yamlmeta/internal/diagnostic"
	"yamlmeta/internal/meta"
)

var (
	errCheckFailed = errors.New("check failed")
)

func newCheckCommand(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Report annotated types a generator cannot emit code for",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(args)
			if err != nil {
				return err
			}

			strict = strict || cfg.Strict

			logger, err := newLogger(root.verbose)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			res, err := root.extract(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			var d diagnostic.Diagnostics
			d.Merge(res.program.Diagnostics)
			d.Merge(meta.Check(res.metas))

			printDiagnostics(cmd.ErrOrStderr(), d)

			if !d.IsValid() {
				return fmt.Errorf("%w: %d errors", errCheckFailed, len(d.Errors))
			}

			if strict && d.HasWarnings() {
				return fmt.Errorf("%w: %d warnings in strict mode", errCheckFailed, len(d.Warnings))
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%d types ok\n", len(res.metas))

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}
