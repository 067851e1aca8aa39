package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/fiscalgo/fiscalrates/internal/catalog"
	"github.com/fiscalgo/fiscalrates/pkg/models"
)

// RenderTable writes rows as an aligned grid with the standard columns.
func RenderTable(w io.Writer, rows []models.RateRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Record Date", "Security Type", "Security Description", "Rate"})
	table.SetAutoWrapText(false)
	for _, r := range rows {
		table.Append([]string{r.RecordDate, r.SecurityType, r.SecurityDesc, r.Rate})
	}
	table.Render()
}

// Write prints a complete report: the table when rows matched, otherwise a
// "no matching data" note, plus a summary of skipped dates on errOut.
func Write(out, errOut io.Writer, rep *Report) {
	if rep.Empty() {
		if len(rep.Failed) > 0 {
			fmt.Fprintf(errOut, "No data collected: all %d remaining fetches failed or matched nothing.\n", len(rep.Failed))
		}
		fmt.Fprintln(out, "No matching data found for the selected criteria.")
		return
	}

	fmt.Fprintln(out, "\n--- Results ---")
	RenderTable(out, rep.Rows)

	if len(rep.Failed) > 0 {
		fmt.Fprintf(errOut, "Note: %d date(s) could not be fetched and were skipped:\n", len(rep.Failed))
		for _, f := range rep.Failed {
			fmt.Fprintf(errOut, "  %s: %v\n", f.Date, f.Err)
		}
	}
}

// WriteCatalog prints the security catalog grouped by category, in stable
// order. It performs no network I/O.
func WriteCatalog(out io.Writer) {
	fmt.Fprintln(out, "\nAvailable Treasury Securities:")
	fmt.Fprintln(out, "------------------------------")
	for _, cat := range catalog.Categories() {
		fmt.Fprintf(out, "\nType: %s\n", cat)
		for _, desc := range catalog.Descriptions(cat) {
			fmt.Fprintf(out, "  - %q\n", desc)
		}
	}
	fmt.Fprintln(out, "\nUse the exact description (quoted if it contains spaces) with the lookup/range commands.")
}
