// Command ppi-resample resamples grayscale fingerprint images between two
// sample rates.
//
// Usage:
//
//	ppi-resample -a 1000 -b 500 -s print.png -t print-500.png
//	ppi-resample -a 600 -b 500 -r ./src -o ./out -m png -w 8
//	ppi-resample -a 1200 -b 500 -r ./src -o ./out -i bicubic -f ideal
//	ppi-resample -c nfir.yaml --print-config
//
// Options may also come from a config file (--config) or from PPI_*
// environment variables such as PPI_SRC_RATE.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	resampler "github.com/tphakala/go-ppi-resampler"
	"github.com/tphakala/go-ppi-resampler/internal/engine"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Resample grayscale fingerprint images between sample rates",
		Version:      resampler.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := loadOptions(v, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, opts)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf(versionText, resampler.Version, strings.Join(engine.Available(), ", ")))
	registerFlags(cmd.Flags())
	return cmd
}

// run executes a configured invocation.
func run(ctx context.Context, cmd *cobra.Command, opts options) error {
	out := cmd.OutOrStdout()

	if opts.PrintConfig {
		text, err := opts.yaml()
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	}

	if err := opts.validate(); err != nil {
		return err
	}

	logger, closeLog := newLogger(opts, cmd.ErrOrStderr())
	defer closeLog()

	r, err := resampler.New(opts.resamplerConfig())
	if err != nil {
		logger.Error("configuration rejected", zap.Error(err))
		return err
	}

	if opts.Verify {
		ok, err := confirm(cmd.InOrStdin(), out, opts, r.Info())
		if err != nil || !ok {
			return err
		}
	}

	jobs, err := collectJobs(opts)
	if err != nil {
		logger.Error("cannot list source images", zap.Error(err))
		return err
	}
	if len(jobs) == 0 {
		logger.Warn("no source images found", zap.String("dir", opts.SrcDir), zap.String("format", opts.ImgFmt))
	}

	logger.Debug("starting batch",
		zap.Int("images", len(jobs)),
		zap.Int("workers", opts.workers()),
		zap.String("direction", r.Info().Direction.String()),
		zap.String("interpolation", r.Info().Interpolation),
		zap.String("filter", r.Info().FilterShape),
	)

	start := time.Now()
	b := &batch{r: r, opts: opts, logger: logger, version: resampler.Version}
	stats, err := b.run(ctx, jobs)
	elapsed := time.Since(start)

	fmt.Fprintf(out, "Total RESAMPLED images count: %d\n", stats.resampled)
	fmt.Fprintf(out, "Elapsed time: %s\n", elapsed.Round(time.Millisecond))
	logger.Info("batch finished",
		zap.Int64("resampled", stats.resampled),
		zap.Int64("failed", stats.failed),
		zap.Bool("dry_run", opts.DryRun),
		zap.Duration("elapsed", elapsed),
	)
	return err
}

// confirm prints the runtime parameters and asks whether to continue.
// Anything other than y or n asks again; end of input declines.
func confirm(in io.Reader, out io.Writer, opts options, info resampler.Info) (bool, error) {
	fmt.Fprintln(out, "  *** Verify runtime parameters ***")
	fmt.Fprintf(out, "Source sample rate: '%d'\n", opts.SrcRate)
	fmt.Fprintf(out, "Target sample rate: '%d'\n", opts.TgtRate)
	fmt.Fprintf(out, "Source image file: '%s'\n", opts.SrcFile)
	fmt.Fprintf(out, "Target image file: '%s'\n", opts.TgtFile)
	fmt.Fprintf(out, "Source imagery dir: '%s'\n", opts.SrcDir)
	fmt.Fprintf(out, "Target imagery dir: '%s'\n", opts.TgtDir)
	fmt.Fprintln(out)
	fmt.Fprint(out, info.String())
	fmt.Fprintf(out, "Dry-run: %t\n", opts.DryRun)
	fmt.Fprintf(out, "Verbose mode: %t\n", opts.Verbose)
	fmt.Fprint(out, "Press y to continue, n to exit:  ")

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "y", "Y":
			return true, nil
		case "n", "N":
			return false, nil
		default:
			fmt.Fprint(out, "Try again:  ")
		}
	}
	return false, sc.Err()
}
