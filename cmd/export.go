// File: cmd/export.go
package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Adarsh1999/combine-files-gpt/pkg/clock"
	"github.com/Adarsh1999/combine-files-gpt/pkg/combine"
	"github.com/Adarsh1999/combine-files-gpt/pkg/config"
)

// exportOptions carries the flag values for one export run.
type exportOptions struct {
	format     string
	outputDir  string
	extensions []string
	expansion  string
	excludes   []string
	clipboard  bool
	dryRun     bool
	yes        bool
}

func newExportCommand(logger *zap.Logger, clk clock.Clock) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [paths...]",
		Short: "Combine files and folders into a single document",
		Long: `Export collects the given files and folders, skips binary and
excluded content, and writes one document with every file's content under
its absolute path. Folders are expanded recursively unless configured
otherwise; exclusion filters never apply to files named explicitly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts, logger, clk)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "", "output format: txt or pdf")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for generated documents")
	flags.StringSliceVarP(&opts.extensions, "ext", "e", nil, "only include these extensions (repeatable)")
	flags.StringVar(&opts.expansion, "expansion", "", "folder expansion mode: shallow or recursive")
	flags.StringSliceVarP(&opts.excludes, "exclude", "x", nil, "gitignore-style exclude pattern (repeatable)")
	flags.BoolVarP(&opts.clipboard, "clipboard", "b", false, "copy the combined text to the clipboard instead of writing a file")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "show what would be exported without writing anything")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation when files are skipped")
	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *exportOptions, logger *zap.Logger, clk clock.Clock) error {
	cwd, err := os.Getwd()
	if err != nil {
		return eris.Wrap(err, "determine working directory")
	}

	cfg, cfgPath, err := config.Load(cwd)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded configuration", zap.String("path", cfgPath))
	}
	applyFlags(cmd, opts, &cfg)

	format, err := combine.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	mode, err := combine.ParseExpansionMode(cfg.Collector.Expansion)
	if err != nil {
		return err
	}
	if opts.clipboard && format != combine.FormatText {
		return eris.New("--clipboard only works with the txt format")
	}

	rules, err := combine.LoadRules(logger, os.Getenv(combine.GlobalIgnoreEnv), cwd, cfg.Collector.Exclude)
	if err != nil {
		return err
	}

	classifier := combine.NewClassifier(cfg.Classifier.SampleSize, cfg.Classifier.Threshold)
	extensions := combine.NewExtensionSet(cfg.Collector.Extensions...)
	collector := combine.NewCollector(classifier, extensions, rules, mode, logger)

	cart := combine.NewCart()
	decisions := collector.AddSelections(cart, args)

	if opts.dryRun {
		printDecisions(cmd.OutOrStdout(), decisions, cart.Len())
		return nil
	}

	if cart.Len() == 0 {
		logger.Warn("nothing to export, selection is empty",
			zap.Int("candidates", len(decisions)),
			zap.Int("skipped", countSkipped(decisions)))
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export: no files were selected.")
		return nil
	}

	if skipped := countSkipped(decisions); skipped > 0 && !opts.yes {
		ok, err := confirmSkips(cmd, skipped, cart.Len())
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("export cancelled")
			fmt.Fprintln(cmd.OutOrStdout(), "Export cancelled.")
			return nil
		}
	}

	text := combine.NewTextWriter(logger)

	if opts.clipboard {
		var buf bytes.Buffer
		files, err := text.Write(&buf, cart.Paths())
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			return eris.Wrap(err, "copy to clipboard")
		}
		logger.Info("copied selection to clipboard", zap.Int("files", files))
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %d file(s) to the clipboard.\n", files)
		return nil
	}

	pdf := combine.NewPDFWriter(cfg.PDF.FontPath, cfg.PDF.FontSize, cfg.PDF.LineHeight, logger)
	exporter := combine.NewExporter(cfg.Output.Dir, clk, text, pdf, logger)

	res, err := exporter.Export(cart.Paths(), format)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d file(s) to %s\n", res.Files, res.Path)
	return nil
}

// applyFlags folds explicit flag values over the file configuration.
// Exclude patterns append instead of replacing, so the command line can
// tighten but not silently discard configured rules.
func applyFlags(cmd *cobra.Command, opts *exportOptions, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir = opts.outputDir
	}
	if cmd.Flags().Changed("ext") {
		cfg.Collector.Extensions = opts.extensions
	}
	if cmd.Flags().Changed("expansion") {
		cfg.Collector.Expansion = opts.expansion
	}
	if len(opts.excludes) > 0 {
		cfg.Collector.Exclude = append(cfg.Collector.Exclude, opts.excludes...)
	}
}

func countSkipped(decisions []combine.Decision) int {
	n := 0
	for _, d := range decisions {
		switch d.Disposition {
		case combine.SkippedFiltered, combine.SkippedUnreadable:
			n++
		}
	}
	return n
}

// printDecisions renders the dry-run report.
func printDecisions(out io.Writer, decisions []combine.Decision, staged int) {
	for _, d := range decisions {
		if d.Reason != "" {
			fmt.Fprintf(out, "%-10s %s (%s)\n", d.Disposition, d.Path, d.Reason)
		} else {
			fmt.Fprintf(out, "%-10s %s\n", d.Disposition, d.Path)
		}
	}
	fmt.Fprintf(out, "%d file(s) would be exported.\n", staged)
}

// confirmSkips asks whether to continue after some candidates were
// skipped. Without a terminal on stdin the answer is yes, so pipelines
// keep working.
func confirmSkips(cmd *cobra.Command, skipped, staged int) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true, nil
	}
	message := fmt.Sprintf("Skipped %d candidate(s). Continue with the remaining %d file(s)? (y/n): ", skipped, staged)
	return promptUser(cmd.InOrStdin(), cmd.OutOrStdout(), message)
}

// promptUser displays a message and waits for the user to enter 'y' or 'n'.
// Returns true if the user enters 'y' or 'yes' (case-insensitive).
func promptUser(in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprint(out, message)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false, eris.Wrap(err, "read confirmation")
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
