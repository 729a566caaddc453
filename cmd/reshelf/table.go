package main

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"reshelf/internal/history"
	"reshelf/internal/renamer"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal() {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderOutcomes(outcomes []renamer.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		detail := outcome.NewPath
		if outcome.Reason != "" {
			detail = outcome.Reason
		}
		rows = append(rows, []string{
			outcome.SceneID,
			outcome.OldPath,
			detail,
			strconv.Itoa(outcome.DuplicateIndex),
			string(outcome.Action),
		})
	}
	return renderTable([]string{"Scene", "Old Path", "New Path / Reason", "Dup", "Action"}, rows)
}

func renderHistory(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		detail := entry.NewPath
		if entry.ErrorMessage != "" {
			detail = entry.ErrorMessage
		}
		dryRun := ""
		if entry.DryRun {
			dryRun = "yes"
		}
		rows = append(rows, []string{
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.SceneID,
			entry.OldPath,
			detail,
			entry.Action,
			dryRun,
		})
	}
	return renderTable([]string{"Time", "Scene", "Old Path", "New Path / Error", "Action", "Dry Run"}, rows)
}
