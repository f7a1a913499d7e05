package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/adapters/embedder"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/bootstrap"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/core"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/data"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/domain/model"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/migrate"
	"github.com/Sakshamyadav19/HireMe-Backend/internal/service"
)

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts migrateOptions
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	fs.BoolVar(&opts.Status, "status", false, "List migrations and whether each is applied instead of running them")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	// "migrate status" is accepted as a synonym for -status.
	if rest := fs.Args(); len(rest) == 1 && rest[0] == "status" {
		opts.Status = true
	} else if len(rest) > 0 {
		return migrateOptions{}, fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		if opts.Status {
			migrations, statusErr := migrate.Status(ctx, db)
			if statusErr != nil {
				return fmt.Errorf("migration status: %w", statusErr)
			}
			return printMigrationStatus(cmdCtx.Out, migrations)
		}

		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		cmdCtx.Logger.Info("migrations completed successfully")
		return nil
	})
}

func printMigrationStatus(w io.Writer, migrations []migrate.Migration) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writef(tw, "VERSION\tSTATUS\tAPPLIED AT\n"); err != nil {
		return err
	}
	for _, m := range migrations {
		status, appliedAt := "pending", "-"
		if m.Applied() {
			status, appliedAt = "applied", m.AppliedAt.UTC().Format(time.RFC3339)
		}
		if err := writef(tw, "%s\t%s\t%s\n", m.Version, status, appliedAt); err != nil {
			return err
		}
	}
	return tw.Flush()
}

type dbResetOptions struct {
	Timeout     time.Duration
	Yes         bool
	AllowRemote bool
}

func parseDBResetFlags(args []string) (dbResetOptions, error) {
	fs := flag.NewFlagSet("db-reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts dbResetOptions
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for reset operations to complete")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return dbResetOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbResetOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func runDBReset(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBResetFlags(args)
	if err != nil {
		return err
	}

	if _, err = guardRemoteHost(cmdCtx, opts.AllowRemote, "drop and recreate the public schema"); err != nil {
		return err
	}
	if !opts.Yes {
		pg := cmdCtx.Config.Postgres
		prompt := fmt.Sprintf("This will reset database %q on %s:%d.\nContinue? [y/N]: ", pg.Name, pg.Host, pg.Port)
		if err = confirmInput(os.Stdin, os.Stdout, prompt, "y", "yes"); err != nil {
			return err
		}
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("dropping public schema", "database", cmdCtx.Config.Postgres.Name)
		if resetErr := cmdCtx.resetDatabase(ctx, db); resetErr != nil {
			return resetErr
		}

		cmdCtx.Logger.Info("re-running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("database reset completed successfully")
		return nil
	})
}

type embedCatalogOptions struct {
	Timeout   time.Duration
	BatchSize int
}

func parseEmbedCatalogFlags(args []string, defaultBatch int) (embedCatalogOptions, error) {
	fs := flag.NewFlagSet("embed-catalog", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts embedCatalogOptions
	fs.DurationVar(&opts.Timeout, "timeout", defaultEmbedTimeout, "Maximum duration for the whole backfill")
	fs.IntVar(&opts.BatchSize, "batch", defaultBatch, "Entries embedded per provider call")

	if err := fs.Parse(args); err != nil {
		return embedCatalogOptions{}, err
	}
	if opts.Timeout <= 0 {
		return embedCatalogOptions{}, errors.New("--timeout must be greater than zero")
	}
	if opts.BatchSize < 1 {
		return embedCatalogOptions{}, errors.New("--batch must be at least 1")
	}
	return opts, nil
}

func runEmbedCatalog(cmdCtx *commandContext, args []string) error {
	opts, err := parseEmbedCatalogFlags(args, cmdCtx.Config.Embedding.BatchSize)
	if err != nil {
		return err
	}
	if cmdCtx.Config.Embedding.APIKey == "" {
		return errors.New("EMBEDDING_API_KEY or OPENROUTER_API_KEY must be set")
	}

	emb, err := newCatalogEmbedder(cmdCtx)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		catalog, svcErr := service.NewCatalogService(service.CatalogServiceOptions{
			Repo:     data.NewCatalogRepo(db, data.CatalogRepoOptions{Logger: cmdCtx.Logger}),
			Embedder: emb,
			Logger:   cmdCtx.Logger,
		})
		if svcErr != nil {
			return svcErr
		}

		res, embedErr := catalog.EmbedMissing(ctx, opts.BatchSize)
		if printErr := writef(cmdCtx.Out, "embedded %d entries in %d batches\n", res.Embedded, res.Batches); printErr != nil {
			return errors.Join(embedErr, printErr)
		}
		return embedErr
	})
}

// newCatalogEmbedder builds the provider embedder, fronted by the Redis vector cache
// when Redis is configured and reachable.
//
//nolint:ireturn // the caching decorator and the bare provider share the core.Embedder port.
func newCatalogEmbedder(cmdCtx *commandContext) (core.Embedder, error) {
	provider, err := embedder.New(embedder.Options{Config: cmdCtx.Config.Embedding, Logger: cmdCtx.Logger})
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	client := connectOptionalRedis(cmdCtx)
	if client == nil {
		return provider, nil
	}
	return service.NewCachingEmbedder(service.CachingEmbedderOptions{
		Embedder: provider,
		Cache:    data.NewRedisCacheRepo(client, data.WithNamespace(cmdCtx.Config.Cache.Namespace)),
		TTL:      cmdCtx.Config.Cache.EmbeddingTTL,
		Logger:   cmdCtx.Logger,
	})
}

type userOptions struct {
	UserID  string
	Timeout time.Duration
}

func parseUserFlags(name string, args []string) (userOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts userOptions
	fs.StringVar(&opts.UserID, "user", "", "User id (required)")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration for the command")

	if err := fs.Parse(args); err != nil {
		return userOptions{}, err
	}
	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return userOptions{}, errors.New("--user is required")
	}
	return opts, nil
}

func runClearResults(cmdCtx *commandContext, args []string) error {
	opts, err := parseUserFlags("clear-results", args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		results, svcErr := service.NewResultService(service.ResultServiceOptions{
			Repo:   data.NewMatchResultCacheRepo(db, data.MatchResultCacheRepoOptions{Logger: cmdCtx.Logger}),
			Logger: cmdCtx.Logger,
		})
		if svcErr != nil {
			return svcErr
		}
		existed, clearErr := results.Clear(ctx, opts.UserID)
		if clearErr != nil {
			return clearErr
		}
		if existed {
			return writef(cmdCtx.Out, "cleared cached results for user %s\n", opts.UserID)
		}
		return writef(cmdCtx.Out, "no cached results for user %s\n", opts.UserID)
	})
}

type jobStatusOptions struct {
	JobID   string
	Timeout time.Duration
}

func parseJobStatusFlags(args []string) (jobStatusOptions, error) {
	fs := flag.NewFlagSet("job-status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts jobStatusOptions
	fs.StringVar(&opts.JobID, "id", "", "Match job id (required)")
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration for the command")

	if err := fs.Parse(args); err != nil {
		return jobStatusOptions{}, err
	}
	opts.JobID = strings.TrimSpace(opts.JobID)
	if opts.JobID == "" {
		return jobStatusOptions{}, errors.New("--id is required")
	}
	return opts, nil
}

func runJobStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseJobStatusFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		status, svcErr := service.NewMatchStatusService(
			data.NewMatchJobRepo(db, data.MatchJobRepoConfig{Logger: cmdCtx.Logger}),
		)
		if svcErr != nil {
			return svcErr
		}
		job, lookupErr := status.Lookup(ctx, opts.JobID)
		if lookupErr != nil {
			return lookupErr
		}
		return printMatchJob(cmdCtx.Out, job)
	})
}

func printMatchJob(w io.Writer, job *model.MatchJob) error {
	errText := "-"
	if job.Error != nil {
		errText = *job.Error
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"Job", job.ID},
		{"User", job.UserID},
		{"Status", string(job.Status)},
		{"Error", errText},
		{"Created", job.CreatedAt.UTC().Format(time.RFC3339)},
		{"Updated", job.UpdatedAt.UTC().Format(time.RFC3339)},
	}
	for _, r := range rows {
		if err := writef(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runReapOnce(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("reap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	timeout := fs.Duration("timeout", defaultMigrationTimeout, "Maximum duration for the pass")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withDatabase(cmdCtx, *timeout, func(ctx context.Context, db *sql.DB) error {
		reaper, err := service.NewReaperService(service.ReaperServiceOptions{
			Repo:   data.NewMatchJobRepo(db, data.MatchJobRepoConfig{Logger: cmdCtx.Logger}),
			Config: cmdCtx.Config.Reaper,
			Logger: cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		return reaper.RunOnce(ctx)
	})
}

type issueTokenOptions struct {
	UserID string
	TTL    time.Duration
}

func parseIssueTokenFlags(args []string) (issueTokenOptions, error) {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts issueTokenOptions
	fs.StringVar(&opts.UserID, "user", "", "User id to embed in the token (required)")
	fs.DurationVar(&opts.TTL, "ttl", 24*time.Hour, "Token lifetime")

	if err := fs.Parse(args); err != nil {
		return issueTokenOptions{}, err
	}
	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return issueTokenOptions{}, errors.New("--user is required")
	}
	if opts.TTL <= 0 {
		return issueTokenOptions{}, errors.New("--ttl must be greater than zero")
	}
	return opts, nil
}

func runIssueToken(cmdCtx *commandContext, args []string) error {
	opts, err := parseIssueTokenFlags(args)
	if err != nil {
		return err
	}
	verifier, err := bootstrap.BuildIdentityVerifier(cmdCtx.Config.Auth)
	if err != nil {
		return err
	}
	if verifier == nil {
		return errors.New("JWT_SECRET must be set")
	}
	token, err := verifier.Sign(opts.UserID, opts.TTL)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	return writef(cmdCtx.Out, "%s\n", token)
}
