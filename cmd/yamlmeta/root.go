package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yamlmeta/internal/analyze"
	"yamlmeta/internal/config"
	"yamlmeta/internal/diagnostic"
	"yamlmeta/internal/meta"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configFile string
	verbose    bool
	dir        string
	include    []string
	exclude    []string
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "yamlmeta",
		Short: "Extract YAML serialization models from annotated Go types",
		Long: `yamlmeta loads Go packages, finds the types marked with //yaml:object
and writes one model document per type: members with their keys and
order, constructors, and union variants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (yamlmeta.yml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&opts.dir, "dir", "", "directory package patterns are resolved from")
	flags.StringSliceVar(&opts.include, "include", nil, "type name globs to include")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "type name globs to exclude")

	rootCmd.AddCommand(newExtractCommand(opts))
	rootCmd.AddCommand(newCheckCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// newLogger builds a development logger in verbose mode and a production
// logger limited to warnings otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	return cfg.Build()
}

// loadConfig reads the config file, if any, and applies command line
// overrides. Positional arguments replace the configured packages.
func (o *rootOptions) loadConfig(args []string) (*config.Config, error) {
	cfg := &config.Config{}

	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Packages = args
	}

	cfg.Include = append(cfg.Include, o.include...)
	cfg.Exclude = append(cfg.Exclude, o.exclude...)

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extraction is the result of loading packages and building their models.
type extraction struct {
	program *analyze.Program
	metas   []*meta.TypeMeta
}

func (o *rootOptions) extract(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*extraction, error) {
	analyzer := analyze.NewAnalyzer(analyze.WithLogger(logger), analyze.WithDir(o.dir))

	program, err := analyzer.LoadPackages(ctx, cfg.Packages...)
	if err != nil {
		return nil, err
	}

	extractor := meta.NewExtractor(program.Graph, program.References,
		meta.WithLogger(logger),
		meta.WithFilter(cfg.Filter),
	)

	return &extraction{program: program, metas: extractor.Extract(program.Declarations)}, nil
}

// printDiagnostics writes diagnostics colored by severity.
func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		c := color.New(color.FgCyan)

		switch diag.Severity {
		case diagnostic.SeverityError:
			c = color.New(color.FgRed)
		case diagnostic.SeverityWarning:
			c = color.New(color.FgYellow)
		}

		c.Fprintf(w, "%s: ", diag.Severity)
		fmt.Fprintln(w, diag.String())
	}
}
