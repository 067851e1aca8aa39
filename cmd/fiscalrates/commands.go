package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fiscalgo/fiscalrates/internal/catalog"
	"github.com/fiscalgo/fiscalrates/internal/daterange"
	"github.com/fiscalgo/fiscalrates/internal/interactive"
	"github.com/fiscalgo/fiscalrates/internal/report"
	"github.com/fiscalgo/fiscalrates/internal/treasury"
)

// availabilityBound parses the configured data-availability window.
func availabilityBound() (daterange.Bound, error) {
	bound, err := daterange.ParseBound(cfg.Data.AvailableFrom, cfg.Data.AvailableTo)
	if err != nil {
		return daterange.Bound{}, fmt.Errorf("bad data availability config: %w", err)
	}
	return bound, nil
}

// resolveSecurities turns the --security1/--security2 flags into canonical
// catalog descriptions.
func resolveSecurities(cmd *cobra.Command) ([]string, error) {
	first, _ := cmd.Flags().GetString("security1")
	second, _ := cmd.Flags().GetString("security2")
	return catalog.ResolvePair(first, second)
}

// fetchAndDisplay runs the shared fetch/filter/print pipeline.
func fetchAndDisplay(cmd *cobra.Command, dates, securities []string) error {
	assembler := report.NewAssembler(treasury.NewClient(cfg))

	fmt.Println("\nFetching data, please wait...")
	rep, err := assembler.Collect(cmd.Context(), dates, securities)
	if err != nil {
		return err
	}
	report.Write(os.Stdout, os.Stderr, rep)
	return nil
}

// --- Lookup Command ---

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up rates for specific dates (up to 5)",
	Long: `Look up average interest rates for up to five specific record dates.

Examples:
  fiscalrates lookup --dates 2023-09-30 --security1 "Treasury Bills"
  fiscalrates lookup --dates 2023-08-31,2023-09-30 --security1 "Treasury Bills" --security2 "Treasury Notes"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDates, _ := cmd.Flags().GetStringSlice("dates")
		dates, err := daterange.ValidateDates(rawDates)
		if err != nil {
			return err
		}

		securities, err := resolveSecurities(cmd)
		if err != nil {
			return err
		}
		return fetchAndDisplay(cmd, dates, securities)
	},
}

// --- Range Command ---

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Look up rates over an inclusive month range",
	Long: `Look up average interest rates for the month-end date of every month
in an inclusive YYYY-MM range. Months outside the configured data
availability window are skipped with a warning.

Example:
  fiscalrates range --start-date 2023-01 --end-date 2023-06 --security1 "Treasury Bonds"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bound, err := availabilityBound()
		if err != nil {
			return err
		}

		start, _ := cmd.Flags().GetString("start-date")
		end, _ := cmd.Flags().GetString("end-date")
		dates, skipped, err := daterange.Enumerate(start, end, bound)
		for _, m := range skipped {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s, outside available data (%s to %s).\n",
				m, bound.From, bound.To)
		}
		if err != nil {
			return err
		}

		securities, err := resolveSecurities(cmd)
		if err != nil {
			return err
		}
		return fetchAndDisplay(cmd, dates, securities)
	},
}

// --- List Securities Command ---

var listSecuritiesCmd = &cobra.Command{
	Use:   "list-securities",
	Short: "List all available security types and descriptions",
	Run: func(cmd *cobra.Command, args []string) {
		report.WriteCatalog(os.Stdout)
	},
}

// --- Interactive Command ---

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start the menu-driven interactive mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		bound, err := availabilityBound()
		if err != nil {
			return err
		}
		assembler := report.NewAssembler(treasury.NewClient(cfg))
		session := interactive.NewSession(os.Stdin, os.Stdout, os.Stderr, assembler, bound)
		return session.Run(cmd.Context())
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("fiscalrates configuration")
		fmt.Printf("  API base URL:   %s\n", cfg.API.BaseURL)
		fmt.Printf("  Endpoint:       %s\n", cfg.API.Endpoint)
		fmt.Printf("  Timeout:        %s\n", cfg.API.Timeout())
		fmt.Printf("  Rate limit:     %d req / %s\n", cfg.API.RateLimit, cfg.API.RateWindow())
		fmt.Printf("  Data available: %s to %s\n", cfg.Data.AvailableFrom, cfg.Data.AvailableTo)
		fmt.Printf("  Logging:        %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringSlice("dates", nil, "record dates in YYYY-MM-DD format (repeat or comma-separate, up to 5)")
	lookupCmd.Flags().String("security1", "", `first security description, e.g. "Treasury Bills"`)
	lookupCmd.Flags().String("security2", "", "second security description to compare (optional)")
	_ = lookupCmd.MarkFlagRequired("dates")
	_ = lookupCmd.MarkFlagRequired("security1")

	rangeCmd.Flags().String("start-date", "", "start month in YYYY-MM format")
	rangeCmd.Flags().String("end-date", "", "end month in YYYY-MM format")
	rangeCmd.Flags().String("security1", "", `first security description, e.g. "Treasury Notes"`)
	rangeCmd.Flags().String("security2", "", "second security description to compare (optional)")
	_ = rangeCmd.MarkFlagRequired("start-date")
	_ = rangeCmd.MarkFlagRequired("end-date")
	_ = rangeCmd.MarkFlagRequired("security1")
}
