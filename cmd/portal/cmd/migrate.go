package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vintechs/portal/internal/config"
	"github.com/vintechs/portal/internal/database"
	"github.com/vintechs/portal/internal/logging"
)

var (
	schemaDir string
	dryRun    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the SurrealDB schema",
	Long: `Renders the schema files (the embedded ones, or those in --dir) with the
configured access method and token settings, and applies them. Every
statement is idempotent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

		fsys, dir := database.SchemaFS(), database.SchemaDir
		if schemaDir != "" {
			fsys, dir = afero.NewBasePathFs(afero.NewOsFs(), schemaDir), "/"
		}
		data := database.SchemaData{
			Access:      cfg.GetDBAccess(),
			TokenSecret: cfg.GetAuthTokenSecret(),
			TokenTTL:    cfg.GetAuthTokenTTL(),
		}

		if dryRun {
			migrations, err := database.RenderSchema(fsys, dir, data)
			if err != nil {
				return err
			}
			for _, m := range migrations {
				fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n%s\n", m.Name, m.Statement)
			}
			return nil
		}

		if cfg.GetAuthProvider() != config.AuthProviderSurreal {
			return errors.New("migrate needs AUTH_PROVIDER=surreal")
		}

		ctx := cmd.Context()
		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(context.WithoutCancel(ctx))

		if err := database.Migrate(ctx, db, fsys, dir, data); err != nil {
			return err
		}
		slog.Info("Schema is up to date")
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&schemaDir, "dir", "", "read schema files from this directory instead of the embedded ones")
	migrateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the rendered schema without applying it")
	rootCmd.AddCommand(migrateCmd)
}
