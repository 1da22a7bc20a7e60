package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"hire-rank/internal/app"
	"hire-rank/internal/dataset"
	"hire-rank/internal/domain/job"
	"hire-rank/internal/domain/matching"
	"hire-rank/internal/domain/ranking"
	"hire-rank/internal/export"
	"hire-rank/internal/repository/memory"
	"hire-rank/internal/usecase"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score every candidate against every job and write ranking exports",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		w, err := weightsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		opts := rankOptions{
			Data:     viper.GetString("data"),
			OutDir:   viper.GetString("out"),
			Formats:  viper.GetStringSlice("format"),
			Workers:  viper.GetInt("workers"),
			Parallel: viper.GetInt("parallel"),
			Signals:  viper.GetString("signals"),
			Top:      viper.GetInt("top"),
			Weights:  w,
		}
		return runRank(ctx, opts, cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	fs := rankCmd.Flags()
	fs.StringP("data", "f", "", "YAML dataset with jobs and candidates")
	fs.StringP("out", "o", ".", "directory for export files")
	fs.StringSlice("format", []string{"csv"}, "export formats: csv, xlsx")
	fs.Int("workers", 4, "concurrent candidate evaluations per job")
	fs.Int("parallel", 2, "jobs ranked concurrently")
	fs.String("signals", "hash", "supplementary score provider: hash or none")
	fs.Int("top", 5, "rows per job printed to stdout, 0 for none")
	addWeightFlags(fs)

	for _, name := range []string{"data", "out", "format", "workers", "parallel", "signals", "top"} {
		_ = viper.BindPFlag(name, fs.Lookup(name))
	}
	_ = rankCmd.MarkFlagRequired("data")
}

type rankOptions struct {
	Data     string
	OutDir   string
	Formats  []string
	Workers  int
	Parallel int
	Signals  string
	Top      int
	Weights  ranking.Weights
}

type jobOutcome struct {
	Job    job.Job
	Report usecase.BatchReport
	Rows   []ranking.Ranking
	Files  []string
}

func runRank(ctx context.Context, opts rankOptions, stdout io.Writer, logger *zap.Logger) error {
	if err := opts.Weights.Validate(); err != nil {
		return err
	}
	formats, err := normalizeFormats(opts.Formats)
	if err != nil {
		return err
	}

	ds, err := dataset.Load(opts.Data)
	if err != nil {
		return fmt.Errorf("loading dataset %s: %w", opts.Data, err)
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	store := memory.NewStore()
	for _, j := range ds.Jobs {
		store.PutJob(j)
	}
	for _, c := range ds.Candidates {
		store.PutCandidate(c)
	}
	repos := app.MemoryRepositories(store)

	var signals matching.SignalProvider = matching.HashSignals{}
	if opts.Signals == "none" {
		signals = matching.NoSignals{}
	}
	matches := usecase.NewMatchResultUsecase(repos, signals, opts.Workers, logger)
	rankings := usecase.NewRankingUsecase(repos, nil, usecase.RankingOptions{
		DefaultWeights:  opts.Weights,
		CriteriaVersion: "cli",
	}, logger)

	logger.Info("ranking dataset",
		zap.String("data", opts.Data),
		zap.Int("jobs", len(ds.Jobs)),
		zap.Int("candidates", len(ds.Candidates)),
	)

	outcomes := make([]jobOutcome, len(ds.Jobs))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, j := range ds.Jobs {
		g.Go(func() error {
			out, err := rankJob(gctx, j, matches, rankings, formats, opts.OutDir)
			if err != nil {
				return fmt.Errorf("job %q: %w", j.Title, err)
			}
			outcomes[i] = out
			logger.Info("job ranked",
				zap.String("job", j.Title),
				zap.Int("ranked", len(out.Rows)),
				zap.Int("skipped", out.Report.Skipped),
				zap.Int("failed", out.Report.Failed),
				zap.Strings("files", out.Files),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.Top > 0 {
		printSummary(stdout, outcomes, opts.Top)
	}
	return nil
}

// rankJob scores a job's candidates and ranks them. A job that ends up with
// no scorable candidates yields an empty outcome rather than an error.
func rankJob(ctx context.Context, j job.Job, matches usecase.MatchResultUsecase, rankings usecase.RankingUsecase, formats []string, outDir string) (jobOutcome, error) {
	out := jobOutcome{Job: j}

	report, err := matches.ProcessAllCandidatesForJob(ctx, j.ID)
	out.Report = report
	if err != nil {
		return out, err
	}

	rows, err := rankings.GenerateRanking(ctx, j.ID, nil)
	if err != nil {
		if errors.Is(err, usecase.ErrNoMatchData) {
			return out, nil
		}
		return out, err
	}
	out.Rows = rows

	for _, format := range formats {
		var f export.File
		switch format {
		case "csv":
			f, err = rankings.ExportCSV(ctx, j.ID)
		case "xlsx":
			f, err = rankings.ExportXLSX(ctx, j.ID)
		}
		if err != nil {
			return out, err
		}
		path := filepath.Join(outDir, fileName(f.Name))
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return out, err
		}
		out.Files = append(out.Files, path)
	}
	return out, nil
}

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// fileName keeps an export name inside the output directory.
func fileName(name string) string {
	return pathSeparators.Replace(name)
}

func normalizeFormats(in []string) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "csv", "xlsx":
		case "":
			continue
		default:
			return nil, fmt.Errorf("unsupported format %q", f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func printSummary(w io.Writer, outcomes []jobOutcome, top int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%s\t(%d ranked, %d skipped)\n", o.Job.Title, len(o.Rows), o.Report.Skipped)
		for i, r := range o.Rows {
			if i >= top {
				break
			}
			fmt.Fprintf(tw, "  #%d\t%s\t%.1f\t%.1f%%\n", r.RankPosition, r.CandidateName, r.Score, r.Percentile)
		}
	}
	_ = tw.Flush()
}
