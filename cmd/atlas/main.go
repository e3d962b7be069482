// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	atlas "github.com/Nikkoola22/ATLAS"
	"github.com/Nikkoola22/ATLAS/batch"
	"github.com/Nikkoola22/ATLAS/config"
	"github.com/Nikkoola22/ATLAS/corpus"
	"github.com/Nikkoola22/ATLAS/search"
	"github.com/Nikkoola22/ATLAS/server"
	"github.com/Nikkoola22/ATLAS/storage/badger"
)

const configKey = "config"

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "atlas",
		Usage:  "Answer questions from the internal HR documents",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error); overrides the config file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Environment files to load (default: ./.env when present)",
			},
			&cli.StringFlag{
				Name:  "corpus-dir",
				Usage: "Read the corpus from this directory instead of the embedded one",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a question",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Retrieval strategy (two-stage, scorer); defaults to the config file",
					},
					&cli.BoolFlag{
						Name:  "number",
						Usage: "Also print the first number found in the answer",
					},
				},
			},
			{
				Name:      "score",
				Usage:     "Run the single-pass keyword scorer",
				ArgsUsage: "QUESTION",
				Action:    scoreCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "ranking",
						Usage: "Print the chapter ranking instead of the chapter text",
					},
				},
			},
			{
				Name:      "locate",
				Usage:     "Print the section ids the completion service picks for a question",
				ArgsUsage: "QUESTION",
				Action:    locateCommand,
			},
			{
				Name:   "index",
				Usage:  "Print the section index sent to the completion service",
				Action: indexCommand,
			},
			{
				Name:   "batch",
				Usage:  "Evaluate every question of a file",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Question file: one question per line, or [[question]] tables when it ends in .toml",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Retrieval strategy (two-stage, scorer); defaults to the config file",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of questions evaluated concurrently",
						Value: 4,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N questions",
						Value: 10,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Write the corpus documents into a BadgerDB database",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address; defaults to the config file",
					},
				},
			},
		},
	}
}

// setup loads the environment and configuration, then installs the logger.
func setup(c *cli.Context) error {
	if err := config.LoadEnv(c.StringSlice("env-file")...); err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if dir := c.String("corpus-dir"); dir != "" {
		cfg.Corpus.Dir = dir
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := setupLogger(cfg.Logging.Level); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func setupLogger(levelStr string) error {
	level, err := config.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func openEngine(c *cli.Context) (*atlas.Engine, error) {
	cfg := appConfig(c)
	bundle, err := loadBundle(cfg)
	if err != nil {
		return nil, err
	}
	opts := []atlas.EngineOption{
		atlas.WithBundle(bundle),
		atlas.WithAIConfig(cfg.CompletionConfig()),
		atlas.WithSearchOptions(search.WithMaxSections(cfg.Search.MaxSections)),
	}
	if cfg.Store.Driver == config.StoreBadger {
		opts = append(opts, atlas.WithBadgerStore(cfg.Store.Path))
	}
	return atlas.NewEngine(opts...)
}

func questionArg(c *cli.Context) (string, error) {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return "", errors.New("a question is required")
	}
	return question, nil
}

func strategyFlag(c *cli.Context) string {
	if s := c.String("strategy"); s != "" {
		return s
	}
	return appConfig(c).Search.Strategy
}

func askCommand(c *cli.Context) error {
	question, err := questionArg(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	retriever, err := engine.Retriever(strategyFlag(c))
	if err != nil {
		return err
	}
	result, err := retriever.Retrieve(c.Context, question, nil)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintln(out, search.WithContact(result.Answer))
	if len(result.SectionIDs) > 0 {
		fmt.Fprintf(out, "\nSections: %s\n", strings.Join(result.SectionIDs, ", "))
	}
	if c.Bool("number") {
		if n := search.ExtractNumber(result.Answer); n != nil {
			fmt.Fprintf(out, "Nombre: %d\n", *n)
		} else {
			fmt.Fprintln(out, "Nombre: -")
		}
	}
	return nil
}

func scoreCommand(c *cli.Context) error {
	question, err := questionArg(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	out := c.App.Writer
	if !c.Bool("ranking") {
		fmt.Fprintln(out, engine.ScoreAndRetrieveSingleChapter(question))
		return nil
	}
	for _, r := range engine.Rank(question) {
		fmt.Fprintf(out, "%d\t%d\t%s\n", r.Score, r.ChapterID, r.Title)
	}
	return nil
}

func locateCommand(c *cli.Context) error {
	question, err := questionArg(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if engine.Completer() == nil {
		return atlas.ErrCompleterUnavailable
	}
	for _, id := range engine.LocateSections(c.Context, question) {
		fmt.Fprintln(c.App.Writer, id)
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintln(c.App.Writer, engine.Index())
	return nil
}

func batchCommand(c *cli.Context) error {
	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open question file: %w", err)
	}
	defer f.Close()

	var items []batch.Item
	if strings.HasSuffix(path, ".toml") {
		items, err = batch.ReadTOML(f)
	} else {
		items, err = batch.ReadLines(f)
	}
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	runner, err := engine.NewBatchRunner(strategyFlag(c),
		batch.WithPoolSize(c.Int("workers")),
		batch.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	)
	if err != nil {
		return err
	}
	defer runner.Release()

	outcomes, err := runner.Run(c.Context, items)
	if err != nil {
		return err
	}

	out := c.App.Writer
	failed, missed := 0, 0
	for _, o := range outcomes {
		status := "ok"
		switch {
		case o.Err != nil:
			status = "error"
			failed++
		case !o.Matched():
			status = "miss"
			missed++
		}
		var sections, number string
		if o.Result != nil {
			sections = strings.Join(o.Result.SectionIDs, ",")
		}
		if o.Number != nil {
			number = fmt.Sprint(*o.Number)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", o.Item.ID, status, sections, number, o.Elapsed.Round(time.Millisecond))
	}
	fmt.Fprintf(out, "%d questions, %d failed, %d missed\n", len(outcomes), failed, missed)
	return nil
}

func seedCommand(c *cli.Context) error {
	ctx := c.Context
	cfg := appConfig(c)

	bundle, err := loadBundle(cfg)
	if err != nil {
		return err
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return err
	}
	if err := repo.PutDocuments(ctx, bundle.Documents...); err != nil {
		return fmt.Errorf("failed to seed documents: %w", err)
	}
	docs, err := repo.ListDocuments(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d documents stored in %s\n", len(docs), c.String("db"))
	return nil
}

func loadBundle(cfg *config.Config) (*corpus.Bundle, error) {
	if cfg.Corpus.Dir != "" {
		return corpus.LoadDir(cfg.Corpus.Dir)
	}
	return corpus.Load()
}

func serveCommand(c *cli.Context) error {
	cfg := appConfig(c)
	addr := c.String("addr")
	if addr == "" {
		addr = cfg.Address()
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()
	if engine.Completer() == nil {
		slog.Warn("no API key configured, only /api/score will answer")
	}

	srv, err := server.New(engine)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
