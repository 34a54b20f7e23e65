package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/thesisgrade/internal/roster"
)

func runRosterImport(cmd *cobra.Command, _ []string) error {
	if studentsFile == "" && lecturersFile == "" {
		return errors.New("nothing to import: pass --students and/or --lecturers")
	}
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	out := cmd.OutOrStdout()

	if lecturersFile != "" {
		f, err := os.Open(lecturersFile)
		if err != nil {
			return err
		}
		ls, err := roster.ParseLecturersCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", lecturersFile, err)
		}
		n, err := a.roster.UpsertLecturers(ctx, ls)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "lecturers: %d read, %d new\n", len(ls), n)
	}

	if studentsFile != "" {
		f, err := os.Open(studentsFile)
		if err != nil {
			return err
		}
		ss, err := roster.ParseStudentsCSV(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", studentsFile, err)
		}
		res, err := a.intake.ImportStudents(ctx, a.roster, ss)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "students: %d new, %d updated, %d seminar scores recorded\n",
			res.Inserted, res.Updated, res.SeminarRecorded)
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	key, err := a.report.Snapshot(ctx, a.blobs)
	if err != nil {
		return err
	}
	u, _ := a.blobs.SignedURL(key)
	fmt.Fprintln(cmd.OutOrStdout(), u)
	return nil
}
