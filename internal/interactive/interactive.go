// Package interactive implements the menu-driven terminal surface. It loops
// over the same operations the CLI subcommands expose until the user quits.
package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fiscalgo/fiscalrates/internal/catalog"
	"github.com/fiscalgo/fiscalrates/internal/daterange"
	"github.com/fiscalgo/fiscalrates/internal/report"
)

// Session runs the interactive menu over an input/output pair.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	errOut    io.Writer
	assembler *report.Assembler
	bound     daterange.Bound
}

// NewSession creates an interactive session. in is normally os.Stdin.
func NewSession(in io.Reader, out, errOut io.Writer, a *report.Assembler, bound daterange.Bound) *Session {
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		errOut:    errOut,
		assembler: a,
		bound:     bound,
	}
}

// Run loops the menu until the user quits or input ends. Invalid entries
// re-prompt rather than terminate.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Treasury Average Interest Rates")
		fmt.Fprintln(s.out, "  1) Look up rates for specific dates")
		fmt.Fprintln(s.out, "  2) Look up rates over a month range")
		fmt.Fprintln(s.out, "  3) List available securities")
		fmt.Fprintln(s.out, "  4) Quit")

		choice, ok := s.prompt("Choose an option [1-4]: ")
		if !ok {
			return nil // input closed
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.runLookup(ctx)
		case "2":
			s.runRange(ctx)
		case "3":
			report.WriteCatalog(s.out)
		case "4", "q", "quit", "exit":
			fmt.Fprintln(s.out, "Bye.")
			return nil
		default:
			fmt.Fprintln(s.errOut, "Please enter a number between 1 and 4.")
		}
	}
}

func (s *Session) runLookup(ctx context.Context) {
	line, ok := s.prompt("Dates (YYYY-MM-DD, space-separated, up to 5): ")
	if !ok {
		return
	}
	dates, err := daterange.ValidateDates(strings.Fields(line))
	if err != nil {
		fmt.Fprintln(s.errOut, "Error:", err)
		return
	}
	if len(dates) == 0 {
		fmt.Fprintln(s.errOut, "Error: at least one date is required.")
		return
	}

	securities, ok := s.promptSecurities()
	if !ok {
		return
	}
	s.collect(ctx, dates, securities, nil)
}

func (s *Session) runRange(ctx context.Context) {
	start, ok := s.prompt("Start month (YYYY-MM): ")
	if !ok {
		return
	}
	end, ok := s.prompt("End month (YYYY-MM): ")
	if !ok {
		return
	}
	dates, skipped, err := daterange.Enumerate(strings.TrimSpace(start), strings.TrimSpace(end), s.bound)
	if err != nil {
		fmt.Fprintln(s.errOut, "Error:", err)
		return
	}

	securities, ok := s.promptSecurities()
	if !ok {
		return
	}
	s.collect(ctx, dates, securities, skipped)
}

// promptSecurities reads one required and one optional security description,
// re-prompting only at the menu level on failure.
func (s *Session) promptSecurities() ([]string, bool) {
	first, ok := s.prompt("Security description: ")
	if !ok {
		return nil, false
	}
	second, ok := s.prompt("Second security to compare (blank for none): ")
	if !ok {
		return nil, false
	}
	securities, err := catalog.ResolvePair(strings.TrimSpace(first), strings.TrimSpace(second))
	if err != nil {
		fmt.Fprintln(s.errOut, "Error:", err)
		return nil, true
	}
	return securities, true
}

func (s *Session) collect(ctx context.Context, dates, securities []string, skipped []string) {
	if securities == nil {
		return
	}
	for _, m := range skipped {
		fmt.Fprintf(s.errOut, "Warning: skipping %s, outside available data (%s to %s).\n",
			m, s.bound.From, s.bound.To)
	}
	fmt.Fprintln(s.out, "\nFetching data, please wait...")
	rep, err := s.assembler.Collect(ctx, dates, securities)
	if err != nil {
		fmt.Fprintln(s.errOut, "Error:", err)
		return
	}
	report.Write(s.out, s.errOut, rep)
}

// prompt prints a label and reads one line. ok is false once input is closed.
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
