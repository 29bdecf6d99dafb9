package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"address-api/internal/config"
	"address-api/internal/importer"
	"address-api/internal/logger"
	"address-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	sheetName   string
	skipInvalid bool
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "importer [file]",
	Short: "Bulk import addresses from a CSV or XLSX file",
	Long: `Reads name, latitude and longitude columns from a .csv or .xlsx file,
validates every row with the same rules as the API and loads them with COPY.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runImport,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "configs", "Directory containing app.env")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "XLSX sheet name (first sheet by default)")
	rootCmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "Import valid rows and report the rejected ones")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing to the database")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger.Setup(cfg.Environment)

	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("cannot connect to db: %w", err)
	}
	defer pool.Close()

	result, err := importer.Import(ctx, repository.NewRepository(pool), args[0], importer.Options{
		Sheet:       sheetName,
		SkipInvalid: skipInvalid,
		DryRun:      dryRun,
	})
	report(cmd, result)
	if err != nil {
		return err
	}

	log.Info().Int("read", result.Read).Int64("imported", result.Imported).Msg("import finished")
	return nil
}

func report(cmd *cobra.Command, result importer.Result) {
	out := cmd.OutOrStdout()
	for _, rejected := range result.Rejected {
		fmt.Fprintf(out, "rejected %v\n", rejected)
	}
	fmt.Fprintf(out, "Read %d rows, rejected %d, imported %d\n", result.Read, len(result.Rejected), result.Imported)
}
