package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/metrics"
	"github.com/mind-engage/thesisgrade/internal/report"
)

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var aggs []grading.StudentAggregate
	if reportStudent != "" {
		agg, ok, err := a.report.Student(ctx, reportStudent)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no evaluations for student %s", reportStudent)
		}
		aggs = append(aggs, agg)
	} else if aggs, err = a.report.Build(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reportCSV {
		metrics.Reports.WithLabelValues("csv").Inc()
		return report.WriteCSV(out, aggs)
	}
	metrics.Reports.WithLabelValues("table").Inc()
	_, err = fmt.Fprintln(out, renderTable(aggs, isTerminal(out)))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	incompleteStyle = cellStyle.Foreground(lipgloss.Color("#E74C3C"))
)

// renderTable lays out the recap in the export column order. Absent roles
// show as "-".
func renderTable(aggs []grading.StudentAggregate, styled bool) string {
	t := table.New().Headers(report.Header()...)
	if styled {
		t = t.Border(lipgloss.RoundedBorder())
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	incomplete := map[int]bool{}
	for i, row := range report.ToRows(aggs) {
		cells := []string{row.StudentID, row.StudentName}
		for _, role := range grading.Roles() {
			if v := row.Scores[role]; v != nil {
				cells = append(cells, strconv.FormatFloat(*v, 'f', 2, 64))
			} else {
				cells = append(cells, "-")
			}
		}
		cells = append(cells, strconv.FormatFloat(row.FinalScore, 'f', 2, 64), string(row.Letter))
		t = t.Row(cells...)
		incomplete[i] = !row.Complete
	}
	t = t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case styled && incomplete[row]:
			return incompleteStyle
		}
		return cellStyle
	})
	return t.String()
}
