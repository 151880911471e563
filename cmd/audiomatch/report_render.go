package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"audiomatch/internal/crossref"
	"audiomatch/internal/workflow"
)

func renderOutcome(cmd *cobra.Command, outcome workflow.Outcome) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	report := outcome.Report
	summary := outcome.Summary

	writeLines := func(lines []string) {
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}

	writeLines(renderSectionHeader("Summary", colorize))
	fmt.Fprintln(out, renderKeyValue("Run", outcome.RunID))
	fmt.Fprintln(out, renderKeyValue("Native source", outcome.Native.Source))
	fmt.Fprintln(out, renderKeyValue("Native devices", fmt.Sprintf("%d", summary.NativeTotal)))
	fmt.Fprintln(out, renderKeyValue("Browser devices", fmt.Sprintf("%d", summary.ForeignTotal)))
	fmt.Fprintln(out, renderStatusLine("Matched", matchRateKind(summary), fmt.Sprintf("%d (%d%%)", summary.Matched, summary.MatchRate), colorize))
	if breakdown := confidenceBreakdown(summary); breakdown != "" {
		fmt.Fprintln(out, renderKeyValue("By confidence", breakdown))
	}
	for _, warning := range outcome.Native.Warnings {
		fmt.Fprintln(out, renderStatusLine("Warning", statusWarn, warning, colorize))
	}
	fmt.Fprintln(out)

	writeLines(renderSectionHeader("Matches", colorize))
	if len(report.Matches) == 0 {
		fmt.Fprintln(out, "No matches")
	} else {
		fmt.Fprint(out, renderTable(
			[]string{"Native", "Browser", "Strategy", "Confidence", "Score"},
			matchRows(report.Matches),
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
		))
		fmt.Fprintln(out)
	}

	if len(report.UnmatchedNative) > 0 {
		fmt.Fprintln(out)
		writeLines(renderSectionHeader("Unmatched native devices", colorize))
		fmt.Fprint(out, renderTable(
			[]string{"Name", "Type", "Connectivity", "ID"},
			unmatchedNativeRows(report),
			nil,
		))
		fmt.Fprintln(out)
	}
	if len(report.UnmatchedForeign) > 0 {
		fmt.Fprintln(out)
		writeLines(renderSectionHeader("Unmatched browser devices", colorize))
		fmt.Fprint(out, renderTable(
			[]string{"Label", "Device ID", "Group ID"},
			unmatchedForeignRows(report),
			nil,
		))
		fmt.Fprintln(out)
	}
}

// sortMatchesForDisplay orders by confidence tier, then score. The report
// itself keeps acceptance order.
func sortMatchesForDisplay(matches []crossref.Match) []crossref.Match {
	sorted := append([]crossref.Match(nil), matches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i].Confidence.Rank(), sorted[j].Confidence.Rank()
		if ri != rj {
			return ri > rj
		}
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

func matchRows(matches []crossref.Match) [][]string {
	sorted := sortMatchesForDisplay(matches)
	rows := make([][]string, 0, len(sorted))
	for _, m := range sorted {
		rows = append(rows, []string{
			m.Native.Name,
			foreignLabel(m.Foreign.Label, m.Foreign.DeviceID),
			m.MatchType.Label(),
			string(m.Confidence),
			fmt.Sprintf("%.0f", m.Score),
		})
	}
	return rows
}

func unmatchedNativeRows(report crossref.Report) [][]string {
	rows := make([][]string, 0, len(report.UnmatchedNative))
	for _, d := range report.UnmatchedNative {
		rows = append(rows, []string{d.Name, string(d.DeviceType), string(d.Connectivity), orDash(d.ID)})
	}
	return rows
}

func unmatchedForeignRows(report crossref.Report) [][]string {
	rows := make([][]string, 0, len(report.UnmatchedForeign))
	for _, f := range report.UnmatchedForeign {
		rows = append(rows, []string{foreignLabel(f.Label, ""), orDash(f.DeviceID), orDash(f.GroupID)})
	}
	return rows
}

func foreignLabel(label, deviceID string) string {
	if strings.TrimSpace(label) != "" {
		return label
	}
	if deviceID != "" {
		return "(no label) " + deviceID
	}
	return "(no label)"
}

func matchRateKind(summary crossref.Summary) statusKind {
	switch {
	case summary.NativeTotal == 0:
		return statusInfo
	case summary.Matched == summary.NativeTotal:
		return statusOK
	case summary.Matched == 0:
		return statusError
	default:
		return statusWarn
	}
}

func confidenceBreakdown(summary crossref.Summary) string {
	var parts []string
	for _, c := range []crossref.Confidence{crossref.ConfidenceHigh, crossref.ConfidenceMedium, crossref.ConfidenceLow} {
		if n := summary.ByConfidence[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", c, n))
		}
	}
	return strings.Join(parts, ", ")
}
