// Command promptgen renders every prompt file in the prompts directory, sends
// it to a language model and saves the result, uploading it to the bucket of
// the selected deployment tier.
//
// Usage:
//
//	promptgen <beta|prod> [flags]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-systems/promptgen/pkg/adapter"
	"github.com/zen-systems/promptgen/pkg/config"
	"github.com/zen-systems/promptgen/pkg/evidence"
	"github.com/zen-systems/promptgen/pkg/inference"
	"github.com/zen-systems/promptgen/pkg/logging"
	"github.com/zen-systems/promptgen/pkg/pipeline"
	"github.com/zen-systems/promptgen/pkg/publish"
)

type options struct {
	configFile   string
	promptsDir   string
	templatesDir string
	outputDir    string
	adapter      string
	model        string
	recordFile   string
	logJSON      bool
	verbose      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "promptgen <" + strings.Join(tierNames(), "|") + ">",
		Short: "Generate content from prompt templates and publish it per tier",
		Long: `promptgen processes every *.json prompt file in the prompts directory in name
order: it renders the referenced template, sends the instruction and the
rendered text to the model, writes the response to the output directory and
uploads it to the bucket configured for the tier (S3_BUCKET_BETA or
S3_BUCKET_PROD). The first failure stops the run.`,
		Args:          validateTierArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), cmd.OutOrStdout(), config.Tier(args[0]), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "path to config file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&opts.promptsDir, "prompts-dir", "", "directory holding *.json prompt files")
	flags.StringVar(&opts.templatesDir, "templates-dir", "", "directory holding prompt templates")
	flags.StringVar(&opts.outputDir, "output-dir", "", "directory generated files are written to")
	flags.StringVar(&opts.adapter, "adapter", "", "model backend: "+strings.Join(adapter.Names, ", "))
	flags.StringVar(&opts.model, "model", "", "model id or alias (default depends on the adapter)")
	flags.StringVar(&opts.recordFile, "record", "", "write a JSON record of a successful run to this path")
	flags.BoolVar(&opts.logJSON, "log-json", false, "emit JSON logs")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "include debug logs")

	return cmd
}

func validateTierArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return errors.WithHintf(err, "usage: %s", cmd.UseLine())
	}
	if _, err := config.ParseTier(args[0]); err != nil {
		return errors.WithHintf(err, "usage: %s", cmd.UseLine())
	}
	return nil
}

func run(ctx context.Context, out io.Writer, tier config.Tier, opts *options) error {
	cfg, err := config.Load(tier, opts.configFile)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)

	log := logging.New(logging.Options{JSON: opts.logJSON, Verbose: opts.verbose, Output: out})
	defer func() { _ = log.Sync() }()

	a, err := adapter.New(ctx, cfg.Inference)
	if err != nil {
		return err
	}

	model := cfg.Model()
	if cfg.Aliases.IsAlias(cfg.Inference.Model) {
		log.Debug("resolved model alias", zap.String("alias", cfg.Inference.Model), zap.String("model", model))
	}
	client, err := inference.NewClient(a, model)
	if err != nil {
		return err
	}

	var store publish.ObjectStore
	if cfg.Bucket != "" {
		store, err = publish.NewMinioStore(cfg.S3)
		if err != nil {
			return err
		}
	} else {
		log.Warn("no bucket configured for tier, outputs stay local",
			zap.String("tier", cfg.Tier.String()),
			zap.String("env", cfg.Tier.BucketEnvVar()),
		)
	}

	runner, err := pipeline.NewRunner(cfg, client, publish.NewPublisher(store, log), log)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if opts.recordFile != "" {
		if err := evidence.Write(opts.recordFile, evidence.FromSummary(summary, time.Now())); err != nil {
			return err
		}
		log.Info("wrote run record", zap.String("path", opts.recordFile))
	}

	printSummary(out, summary)
	return nil
}

func applyOverrides(cfg *config.Run, opts *options) {
	if opts.promptsDir != "" {
		cfg.Dirs.Prompts = opts.promptsDir
	}
	if opts.templatesDir != "" {
		cfg.Dirs.Templates = opts.templatesDir
	}
	if opts.outputDir != "" {
		cfg.Dirs.Outputs = opts.outputDir
	}
	if opts.adapter != "" {
		cfg.Inference.Adapter = opts.adapter
	}
	if opts.model != "" {
		cfg.Inference.Model = opts.model
	}
}

func printSummary(out io.Writer, summary *pipeline.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROMPT\tOUTPUT\tBYTES\tDESTINATION")
	for _, f := range summary.Files {
		dest := f.Publish.URI()
		if f.Publish.Skipped {
			dest = "(local only)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", f.Source, f.Artifact.Path, f.Artifact.Size(), dest)
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\nAll prompts processed successfully: %d files, %d published to %s (%s)\n",
		len(summary.Files), summary.Published(), summary.Tier, summary.Duration.Round(time.Millisecond))
}

func tierNames() []string {
	var names []string
	for _, t := range config.Tiers() {
		names = append(names, t.String())
	}
	return names
}
