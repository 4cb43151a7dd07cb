package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Youssif-Salama/big-data-be/internal/config"
	document "github.com/Youssif-Salama/big-data-be/internal/domain/entity/document"
	infradocuments "github.com/Youssif-Salama/big-data-be/internal/infrastructure/documents"
	"github.com/Youssif-Salama/big-data-be/internal/logger"
)

const (
	defaultDataDir   = "development"
	defaultBatchSize = 500
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := logger.New(config.LogConfig{Level: os.Getenv("LOG_LEVEL")})

	app := &cli.App{
		Name:  "data",
		Usage: "load search-engine export files into the postgres document store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "postgres connection string",
				EnvVars:  []string{"DATABASE_DSN"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "replace collections with the content of their export files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "directory holding <collection>.json exports",
						EnvVars: []string{"DATA_DIR"},
						Value:   defaultDataDir,
					},
					&cli.StringSliceFlag{
						Name:  "collection",
						Usage: "collection to import, repeatable (default: all)",
					},
					&cli.IntFlag{
						Name:    "batch-size",
						Usage:   "rows per COPY batch",
						EnvVars: []string{"IMPORT_BATCH_SIZE"},
						Value:   defaultBatchSize,
					},
				},
				Action: func(c *cli.Context) error {
					return runImport(c.Context, c, log)
				},
			},
			{
				Name:  "check",
				Usage: "verify every collection has been imported",
				Action: func(c *cli.Context) error {
					repo, err := infradocuments.NewPostgresRepository(c.Context, c.String("dsn"), 0)
					if err != nil {
						return err
					}
					defer repo.Close()
					if err := repo.Check(c.Context); err != nil {
						return err
					}
					log.Info("all collections present")
					return nil
				},
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatalf("data: %v", err)
	}
}

func runImport(ctx context.Context, c *cli.Context, log *logrus.Logger) error {
	collections, err := selectedCollections(c.StringSlice("collection"))
	if err != nil {
		return err
	}

	repo, err := infradocuments.NewPostgresRepository(ctx, c.String("dsn"), c.Int("batch-size"))
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	return importCollections(ctx, infradocuments.NewFileRepository(c.String("dir")), repo, collections, log)
}

type collectionSource interface {
	Load(ctx context.Context, collection document.Collection) ([]document.Document, error)
}

type collectionSink interface {
	Import(ctx context.Context, collection document.Collection, docs []document.Document) (int, error)
}

// importCollections copies every collection concurrently. Each collection commits
// on its own, so an interrupted run leaves the unfinished ones untouched.
func importCollections(ctx context.Context, source collectionSource, sink collectionSink, collections []document.Collection, log *logrus.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, collection := range collections {
		g.Go(func() error {
			docs, err := source.Load(gctx, collection)
			if err != nil {
				return fmt.Errorf("load %s: %w", collection, err)
			}
			imported, err := sink.Import(gctx, collection, docs)
			if err != nil {
				return fmt.Errorf("import %s: %w", collection, err)
			}
			log.WithFields(logrus.Fields{
				"collection": collection.String(),
				"documents":  imported,
			}).Info("collection imported")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.WithError(err).Warn("import interrupted")
		}
		return err
	}
	log.Info("import finished")
	return nil
}

func selectedCollections(names []string) ([]document.Collection, error) {
	if len(names) == 0 {
		return document.Collections(), nil
	}
	collections := make([]document.Collection, 0, len(names))
	for _, name := range names {
		collection, err := document.ParseCollection(name)
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, nil
}
