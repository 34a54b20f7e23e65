package main

import (
	"github.com/spf13/cobra"
)

// --- Global flags ---
var (
	dbDriver    string
	dbDSN       string
	weightsPath string
	envFile     string

	reportCSV     bool
	reportStudent string

	studentsFile  string
	lecturersFile string

	rootCmd = &cobra.Command{
		Use:           "thesisgrade",
		Short:         "Thesis defense grade recap service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server for rubric forms and the recap",
		RunE:  runServe,
	}

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Print the grade recap",
		RunE:  runReport,
	}

	rosterCmd = &cobra.Command{
		Use:   "roster",
		Short: "Manage the student and lecturer roster",
	}
	rosterImportCmd = &cobra.Command{
		Use:   "import",
		Short: "Bulk upsert students and/or lecturers from CSV files",
		RunE:  runRosterImport,
	}

	snapshotCmd = &cobra.Command{
		Use:   "snapshot",
		Short: "Write a CSV copy of the recap to the blob store",
		RunE:  runSnapshot,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dbDriver, "db-driver", "", "database driver: sqlite or postgres (env DB_DRIVER)")
	pf.StringVar(&dbDSN, "db-dsn", "", "database DSN (env DB_DSN)")
	pf.StringVar(&weightsPath, "weights", "", "YAML weight table (env WEIGHTS_FILE)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "write CSV instead of a table")
	reportCmd.Flags().StringVar(&reportStudent, "student", "", "only this student (NIM)")

	rosterImportCmd.Flags().StringVar(&studentsFile, "students", "", "students CSV (nim,nama,judul,seminar)")
	rosterImportCmd.Flags().StringVar(&lecturersFile, "lecturers", "", "lecturers CSV (nama_dosen)")
	rosterCmd.AddCommand(rosterImportCmd)

	rootCmd.AddCommand(serveCmd, reportCmd, rosterCmd, snapshotCmd)
}
