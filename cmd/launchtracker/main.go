package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emilianohg/launchtracker/internal/bootstrap"
	"github.com/emilianohg/launchtracker/internal/config"
	"github.com/emilianohg/launchtracker/internal/db"
	"github.com/emilianohg/launchtracker/internal/export"
	"github.com/emilianohg/launchtracker/internal/logger"
	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/repository"
	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/store"
	"github.com/emilianohg/launchtracker/internal/tui"
	"github.com/emilianohg/launchtracker/internal/tui/screens"
)

// app holds everything a command needs once startup has finished.
type app struct {
	database *sql.DB
	repo     *repository.KVRepo
	env      *screens.Env
	boot     bootstrap.Result
}

func (a *app) Close() {
	a.database.Close()
}

func open() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed load config")
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed open log")
	}

	path, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}
	database, err := db.OpenAndMigrate(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed open database")
	}

	repo := repository.NewKVRepo(database)
	keys := storage.NewKeys(cfg.AppName)

	res := bootstrap.Run(repo, keys,
		bootstrap.WithPolicy(bootstrap.Policy(cfg.LegacyPolicy)),
		bootstrap.WithLogger(log),
	)
	log.WithFields(logrus.Fields{
		"converted":      res.Converted,
		"reset":          res.Reset,
		"config_created": res.ConfigCreated,
	}).Debug("bootstrap finished")

	opts := []store.Option{store.WithLogger(log)}
	return &app{
		database: database,
		repo:     repo,
		boot:     res,
		env: &screens.Env{
			Config:   store.NewConfigStore(repo, keys, opts...),
			Launches: store.NewLaunchStore(repo, keys, opts...),
			KV:       repo,
			Keys:     keys,
			Settings: cfg,
			Log:      log,
			Now:      time.Now,
		},
	}, nil
}

// withApp opens the app, runs fn and closes the database whatever fn returns.
func withApp(fn func(a *app) error) error {
	a, err := open()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

var rootCmd = &cobra.Command{
	Use:           "launchtracker",
	Short:         "Creative launch tracker",
	Long:          `Launchtracker plans creative launches across shops, with a table, a kanban board, custom columns and a trash.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return tui.Run(a.env)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active launches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			ls := a.env.Launches
			f := models.DefaultFilters()
			f.Search, _ = cmd.Flags().GetString("search")
			if v, _ := cmd.Flags().GetString("shop"); v != "" {
				f.Shop = v
			}
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				f.Status = v
			}
			if v, _ := cmd.Flags().GetString("priority"); v != "" {
				f.Priority = v
			}
			ls.SetFilters(f)

			cs := a.env.Config
			for _, l := range ls.Launches() {
				done, total := store.Progress(l)
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-34s %-14s %-12s %-6s %s..%s %d/%d\n",
					l.ID, l.Name,
					cs.Label(models.KindShops, l.Shop),
					cs.Label(models.KindStatuses, l.Status),
					cs.Label(models.KindPriorities, l.Priority),
					l.StartDate, l.EndDate, done, total)
			}
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print launch counts by status and upcoming deadlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			stats := a.env.Launches.Stats()
			fmt.Fprintf(out, "Total: %d\n", stats.Total)
			for _, item := range a.env.Config.Items(models.KindStatuses) {
				fmt.Fprintf(out, "  %-14s %d\n", item.Name, stats.ByStatus[item.ID])
			}
			if len(stats.ExpiringSoon) > 0 {
				fmt.Fprintln(out, "\nIn scadenza:")
				for _, l := range stats.ExpiringSoon {
					fmt.Fprintf(out, "  %s  %s\n", l.EndDate, l.Name)
				}
			}
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [csv|json]",
	Short: "Export the active launches",
	Long: `Export every active launch, ignoring filters.

Examples:
  launchtracker export            # CSV into the configured exports_output
  launchtracker export json       # JSON
  launchtracker export csv -o -   # CSV to stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := export.CSV
		if len(args) > 0 {
			f, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			format = f
		}

		return withApp(func(a *app) error {
			launches := a.env.Launches.All()
			out, _ := cmd.Flags().GetString("output")
			if out == "-" {
				return export.Write(cmd.OutOrStdout(), format, launches)
			}
			if out == "" {
				out = a.env.Settings.ExportsOutput
			}

			path, err := export.ToFile(out, format, launches)
			if err != nil {
				return err
			}
			a.env.Log.WithField("path", path).Info("exported launches")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d launches to %s\n", len(launches), path)
			return nil
		})
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Inspect and manage deleted launches and columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			search, _ := cmd.Flags().GetString("search")
			items := store.Trash(a.env.Config, a.env.Launches, search)
			if len(items) == 0 {
				fmt.Fprintln(out, "Trash is empty.")
				return nil
			}
			now := time.Now()
			for _, item := range items {
				fmt.Fprintf(out, "%-30s %-9s %-34s %s\n", item.ID, item.Kind, item.Name, store.RelativeTime(now, item.DeletedAt))
			}
			return nil
		})
	},
}

func trashItemCmd(use, short string, apply func(*app, store.TrashItem), done string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app) error {
				item, ok := store.FindTrashItem(a.env.Config, a.env.Launches, args[0])
				if !ok {
					return errors.Errorf("%s is not in the trash", args[0])
				}
				apply(a, item)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", done, item.Name)
				return nil
			})
		},
	}
}

var trashEmptyCmd = &cobra.Command{
	Use:   "empty",
	Short: "Permanently delete everything in the trash",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			n := store.EmptyTrash(a.env.Config, a.env.Launches)
			fmt.Fprintf(cmd.OutOrStdout(), "Permanently deleted %d items\n", n)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database, migration and storage state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			if s, err := db.GetMigrationStatus(a.database); err == nil {
				fmt.Fprintf(out, "Schema: v%d (latest v%d, dirty=%t)\n", s.CurrentVersion, s.LatestVersion, s.Dirty)
			}

			migrated, err := bootstrap.Migrated(a.repo, a.env.Keys)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Data migrated to v%d: %t\n", storage.MigrationVersion, migrated)
			if !a.boot.AlreadyMigrated {
				fmt.Fprintf(out, "This run: legacy=%t converted=%d reset=%t config_created=%t\n",
					a.boot.LegacyFound, a.boot.Converted, a.boot.Reset, a.boot.ConfigCreated)
			}

			entries, err := a.repo.List()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nKeys:")
			for _, e := range entries {
				fmt.Fprintf(out, "  %-40s %8d bytes  %s\n", e.Key, e.Size, e.UpdatedAt)
			}
			return nil
		})
	},
}

func init() {
	listCmd.Flags().String("shop", "", "Shop id (default: all)")
	listCmd.Flags().String("status", "", "Status id (default: all)")
	listCmd.Flags().String("priority", "", "Priority id (default: all)")
	listCmd.Flags().StringP("search", "s", "", "Match name, shop or notes")

	exportCmd.Flags().StringP("output", "o", "", "Output directory, or - for stdout")

	trashCmd.Flags().StringP("search", "s", "", "Filter by name")
	trashCmd.AddCommand(trashItemCmd("restore", "Restore a launch or column", func(a *app, item store.TrashItem) {
		store.RestoreTrashItem(a.env.Config, a.env.Launches, item)
	}, "Restored"))
	trashCmd.AddCommand(trashItemCmd("purge", "Permanently delete a launch or column", func(a *app, item store.TrashItem) {
		store.PurgeTrashItem(a.env.Config, a.env.Launches, item)
	}, "Permanently deleted"))
	trashCmd.AddCommand(trashEmptyCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
