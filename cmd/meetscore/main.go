// Command meetscore ranks swim meet results and scores final times against a
// points table.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/meetscore/internal/adapters/meetfile"
	"github.com/okian/meetscore/internal/adapters/render"
	app "github.com/okian/meetscore/internal/app"
	"github.com/okian/meetscore/internal/config"
	"github.com/okian/meetscore/internal/domain/model"
	"github.com/okian/meetscore/internal/domain/scoring"
	"github.com/okian/meetscore/pkg/logger"
	"github.com/okian/meetscore/pkg/metrics"
	"github.com/urfave/cli/v2"
)

const (
	configFlag         = "config"
	logLevelFlag       = "log-level"
	logFormatFlag      = "log-format"
	tableFlag          = "table"
	eventFlag          = "event"
	allFlag            = "all"
	referenceEventFlag = "reference-event"
	formatFlag         = "format"
	outputFlag         = "output"
	strictFlag         = "strict"
	concurrencyFlag    = "concurrency"
	metricsFileFlag    = "metrics-file"
	stdoutCLIName      = "-"
)

// Exit codes.
const (
	exitFailedEvents = 1
	exitUsage        = 2
)

var build string
var semanticVersion = "v0.1.0-dev" + build

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// newApp builds the command tree writing results to stdout and logs to stderr.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "meetscore",
		Usage:     "Rank swim meet results and score them against a points table",
		Version:   semanticVersion,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "YAML config file (defaults to $MEETSCORE_CONFIG)",
			},
			&cli.StringFlag{
				Name:  logLevelFlag,
				Usage: "Log level: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  logFormatFlag,
				Usage: "Log format: text or json",
			},
			&cli.StringFlag{
				Name:    tableFlag,
				Aliases: []string{"t"},
				Usage:   "YAML score table; the built-in 15 & over table is used when empty",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "score",
				Usage:     "Score final times of a meet",
				ArgsUsage: "<meet file>",
				Flags:     scoreFlags(),
				Action: func(cCtx *cli.Context) error {
					return withEnv(cCtx, stderr, func(e *env) error {
						return e.score(cCtx.Context)
					})
				},
			},
			{
				Name:      "rank",
				Usage:     "Print ranked results of every event",
				ArgsUsage: "<meet file>",
				Flags:     outputFlags(),
				Action: func(cCtx *cli.Context) error {
					return withEnv(cCtx, stderr, func(e *env) error {
						return e.rank(cCtx.Context)
					})
				},
			},
			{
				Name:      "watch",
				Usage:     "Score the meet and rescore whenever the file changes",
				ArgsUsage: "<meet file>",
				Flags:     scoreFlags(),
				Action: func(cCtx *cli.Context) error {
					return withEnv(cCtx, stderr, func(e *env) error {
						return e.watch(cCtx.Context)
					})
				},
			},
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    formatFlag,
			Aliases: []string{"f"},
			Usage:   "Output format: text, yaml or json",
		},
		&cli.StringFlag{
			Name:    outputFlag,
			Aliases: []string{"o"},
			Usage:   "The location to write results. Can be a file path or \"-\" (for stdout).",
			Value:   stdoutCLIName,
		},
	}
}

func scoreFlags() []cli.Flag {
	return append(outputFlags(),
		&cli.StringSliceFlag{
			Name:    eventFlag,
			Aliases: []string{"e"},
			Usage:   "Event to score, e.g. \"Women's 100 Freestyle (SCY)\"; repeatable",
		},
		&cli.BoolFlag{
			Name:  allFlag,
			Usage: "Score every event of the meet",
		},
		&cli.StringFlag{
			Name:  referenceEventFlag,
			Usage: "Score every event against this table description, e.g. \"100 Freestyle (SCY)\"",
		},
		&cli.BoolFlag{
			Name:  strictFlag,
			Usage: "Stop at the first event that cannot be scored",
		},
		&cli.IntFlag{
			Name:  concurrencyFlag,
			Usage: "Events scored in parallel",
		},
		&cli.StringFlag{
			Name:  metricsFileFlag,
			Usage: "Write Prometheus metrics to this textfile when done",
		},
	)
}

// env is everything a command needs once flags and config are resolved.
type env struct {
	log      logger.Logger
	meetPath string
	events   []string
	output   string
	renderer render.Renderer
	svc      *app.Service
	stdout   io.Writer
}

func withEnv(cCtx *cli.Context, stderr io.Writer, fn func(*env) error) error {
	if cCtx.NArg() != 1 {
		return cli.Exit("expected exactly one meet file", exitUsage)
	}

	cfg, err := config.Load(cCtx.Context, cCtx.String(configFlag))
	if err != nil {
		return cli.Exit(err, exitUsage)
	}
	if err := applyFlags(cCtx, cfg); err != nil {
		return cli.Exit(err, exitUsage)
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return cli.Exit(err, exitUsage)
	}
	log := logger.Named("meetscore")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(cCtx.Context, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	format, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}
	renderer, err := render.New(format)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	table, err := loadTable(cfg.ScoreTable)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithScorer(table),
		app.WithReferenceEvent(cfg.ReferenceEvent),
		app.WithStrict(cfg.Strict),
		app.WithConcurrency(cfg.Concurrency),
	)
	if err := svc.Validate(); err != nil {
		return cli.Exit(err, exitUsage)
	}

	var events []string
	if !cCtx.Bool(allFlag) {
		events = cfg.EventNames()
	}

	e := &env{
		log:      log,
		meetPath: cCtx.Args().First(),
		events:   events,
		output:   cCtx.String(outputFlag),
		renderer: renderer,
		svc:      svc,
		stdout:   cCtx.App.Writer,
	}

	err = fn(e)
	if cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Error(cCtx.Context, "writing metrics textfile failed", logger.String("path", cfg.MetricsFile), logger.Error(werr))
		}
	}
	return err
}

// applyFlags lets explicitly set flags override loaded configuration.
func applyFlags(cCtx *cli.Context, cfg *config.Config) error {
	if cCtx.IsSet(logLevelFlag) {
		cfg.LogLevel = cCtx.String(logLevelFlag)
	}
	if cCtx.IsSet(logFormatFlag) {
		cfg.LogFormat = cCtx.String(logFormatFlag)
	}
	if cCtx.IsSet(tableFlag) {
		cfg.ScoreTable = cCtx.String(tableFlag)
	}
	if cCtx.IsSet(formatFlag) {
		cfg.OutputFormat = cCtx.String(formatFlag)
	}
	if cCtx.IsSet(eventFlag) {
		cfg.Events = cCtx.StringSlice(eventFlag)
	}
	if cCtx.IsSet(referenceEventFlag) {
		cfg.ReferenceEvent = cCtx.String(referenceEventFlag)
	}
	if cCtx.IsSet(strictFlag) {
		cfg.Strict = cCtx.Bool(strictFlag)
	}
	if cCtx.IsSet(concurrencyFlag) {
		cfg.Concurrency = cCtx.Int(concurrencyFlag)
	}
	if cCtx.IsSet(metricsFileFlag) {
		cfg.MetricsFile = cCtx.String(metricsFileFlag)
	}
	return cfg.Validate()
}

func loadTable(path string) (*scoring.Table, error) {
	if path == "" {
		return scoring.DefaultTable()
	}
	return scoring.LoadTableFile(path)
}

// openOutput returns stdout for "-" or a file created on first write.
func (e *env) openOutput() io.WriteCloser {
	if e.output == "" || e.output == stdoutCLIName {
		return nopCloser{e.stdout}
	}
	return render.NewLazyFile(e.output)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (e *env) score(ctx context.Context) error {
	meet, err := meetfile.Load(e.meetPath)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}
	return e.scoreMeet(ctx, meet)
}

func (e *env) scoreMeet(ctx context.Context, meet *model.Meet) error {
	report, err := e.svc.ScoreMeet(ctx, meet, e.events)
	if err != nil {
		return cli.Exit(err, exitFailedEvents)
	}

	out := e.openOutput()
	if err := e.renderer.Report(out, report); err != nil {
		_ = out.Close()
		return cli.Exit(err, exitUsage)
	}
	if err := out.Close(); err != nil {
		return cli.Exit(err, exitUsage)
	}

	if failed := report.Failed(); len(failed) > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d events could not be scored", len(failed), len(report.Events)), exitFailedEvents)
	}
	return nil
}

func (e *env) rank(ctx context.Context) error {
	meet, err := meetfile.Load(e.meetPath)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	out := e.openOutput()
	defer out.Close()
	if err := e.renderer.Rankings(out, e.svc.Rankings(ctx, meet)); err != nil {
		return cli.Exit(err, exitUsage)
	}
	return nil
}

func (e *env) watch(ctx context.Context) error {
	meet, err := meetfile.Load(e.meetPath)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	rescore := func(m *model.Meet) {
		if err := e.scoreMeet(ctx, m); err != nil {
			e.log.Warn(ctx, "scoring run incomplete", logger.String("meet", m.Name), logger.Error(err))
		}
	}
	rescore(meet)

	if err := meetfile.Watch(ctx, e.meetPath, e.log, rescore); err != nil {
		return cli.Exit(err, exitUsage)
	}
	return nil
}
