package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/studentregistry/internal/app/migrations"
	"github.com/yigit/studentregistry/internal/bootstrap"
	"github.com/yigit/studentregistry/internal/db"
)

// migrateCmd applies pending schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runMigrate,
}

// importCmd bulk imports a CSV file
var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import students from a CSV file",
	Long: `Import students from a CSV file whose header row names student fields
(student_id, first_name, last_name, email, phone, date_of_birth, gender,
address, course, cgpa, level, intake, nationality, enrollment_date, status).

Rows whose student_id or email already exists are skipped. Rows missing a
required field are rejected. Every non-inserted row is listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// statsCmd prints the global counts
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print total, active, inactive and per-course counts as JSON",
	RunE:  runStats,
}

// summaryCmd prints the per-intake summary
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the per-intake summary as JSON",
	RunE:  runSummary,
}

// openDependencies loads config, opens and migrates the store and builds services
func openDependencies() (*bootstrap.Dependencies, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Seed.Enabled = seedStore

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, err
	}
	return deps, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	migrator := migrations.NewMigrator(database, lgr)
	pending, err := migrator.Pending(cmd.Context())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	}

	if err := migrator.Migrate(cmd.Context()); err != nil {
		return err
	}
	for _, version := range pending {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied migration %s\n", version)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer file.Close()

	deps, err := openDependencies()
	if err != nil {
		return err
	}
	defer deps.Database.Close()

	result, err := deps.ImportService.ImportCSV(cmd.Context(), file)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bulk upload complete. %d students added.\n", result.Inserted)
	fmt.Fprintf(out, "skipped: %d, rejected: %d\n", result.Skipped, result.Rejected)
	for _, row := range result.Rows {
		if row.Reason == "" {
			continue
		}
		fmt.Fprintf(out, "  line %d %s %s: %s\n", row.Line, row.StudentID, row.Outcome, row.Reason)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	deps, err := openDependencies()
	if err != nil {
		return err
	}
	defer deps.Database.Close()

	stats, err := deps.StatsService.GetStats(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), stats)
}

func runSummary(cmd *cobra.Command, args []string) error {
	deps, err := openDependencies()
	if err != nil {
		return err
	}
	defer deps.Database.Close()

	summary, err := deps.StatsService.GetIntakeSummary(cmd.Context())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), summary)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
