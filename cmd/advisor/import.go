package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
	"github.com/MikeSquared-Agency/Advisor/internal/store"
)

func newImportCmd() *cobra.Command {
	var (
		file     string
		encoding string
		replace  bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a catalog CSV into the Postgres vehicles table",
		Long: `Import reads a catalog CSV and stores its raw rows in Postgres, where
"serve" and "wizard" can read them with catalog.source=postgres. Rows are
stored untouched; cleaning happens when the catalog is loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cfg.Database.URL == "" {
				return fmt.Errorf("database.url (or DATABASE_URL) is required for import")
			}
			if file == "" {
				file = cfg.Catalog.Path
			}
			if encoding == "" {
				encoding = cfg.Catalog.Encoding
			}

			rows, err := catalog.LoadFile(file, catalog.Encoding(encoding))
			if err != nil {
				return err
			}

			db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			n, total, err := importRows(ctx, db, rows, store.ImportOptions{Replace: replace, Source: file})
			if err != nil {
				return err
			}
			logger.Info("catalog imported", "file", file, "rows", n, "replace", replace, "total", total)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows from %s (%d in table)\n", n, file, total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to import (default: catalog.path)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "CSV encoding, latin1 or utf8 (default: catalog.encoding)")
	cmd.Flags().BoolVar(&replace, "replace", false, "truncate the table before importing")
	return cmd
}

// importRows copies rows into s and returns the number copied and the
// table size afterwards.
func importRows(ctx context.Context, s store.Store, rows []catalog.Row, opts store.ImportOptions) (int64, int64, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return 0, 0, err
	}
	n, err := s.ImportRows(ctx, rows, opts)
	if err != nil {
		return 0, 0, err
	}
	total, err := s.CountVehicles(ctx)
	if err != nil {
		return n, 0, err
	}
	return n, total, nil
}
