package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/Dan9191/irpf-calculator/internal/config"
	"github.com/Dan9191/irpf-calculator/internal/integrations/ecb"
	"github.com/Dan9191/irpf-calculator/internal/models"
	"github.com/Dan9191/irpf-calculator/internal/service"
	"github.com/spf13/cobra"
)

// cliError prints only the user facing message and keeps the cause reachable
type cliError struct {
	err error
}

func (e cliError) Error() string {
	return models.UserMessage(e.err)
}

func (e cliError) Unwrap() error {
	return e.err
}

func calculateCmd() *cobra.Command {
	var (
		country    string
		currency   string
		fetchRates bool
		ecbURL     string
	)

	cmd := &cobra.Command{
		Use:   "calculate <gross>",
		Short: "Calculate net income for a yearly gross amount",
		Example: `  irpf calculate 50000
  irpf calculate --country it --currency USD --fetch-rates 80000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid gross amount %q: %w", args[0], err)
			}

			var source service.RateSource
			if fetchRates {
				source = ecb.NewECBClient(&config.Config{ECBURL: ecbURL, HTTPTimeout: 10 * time.Second}, logger)
			}
			rates := service.NewRateCache(source, nil, logger)
			if fetchRates {
				if err := rates.Refresh(cmd.Context()); err != nil {
					logger.Warnf("Continuing without exchange rates: %v", err)
				}
			}

			calc, err := service.NewService(rates, logger).Calculate(cmd.Context(), service.CalculationRequest{
				Country:  country,
				Currency: currency,
				Gross:    gross,
			})
			if err != nil {
				return cliError{err: err}
			}

			printCalculation(cmd, calc)
			return nil
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "es", "country code (es, it)")
	cmd.Flags().StringVar(&currency, "currency", "EUR", "currency of the gross amount (EUR, GBP, USD)")
	cmd.Flags().BoolVar(&fetchRates, "fetch-rates", false, "fetch ECB reference rates to convert GBP/USD amounts")
	cmd.Flags().StringVar(&ecbURL, "ecb-url", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml", "ECB reference rates URL")

	return cmd
}

func printCalculation(cmd *cobra.Command, calc *service.Calculation) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Net income (%s)", calc.Country)))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if calc.ExchangeRate != "" {
		fmt.Fprintf(w, "Exchange Rate\t%s\n", calc.ExchangeRate)
	}
	fmt.Fprintf(w, "Gross Income\t%s\n", calc.Values.GrossIncome)
	fmt.Fprintf(w, "Gross Income per Month\t%s\n", calc.Values.GrossIncomePerMonth)
	fmt.Fprintf(w, "Net Income\t%s\n", calc.Values.NetIncome)
	fmt.Fprintf(w, "Net Income per Month\t%s\n", calc.Values.NetIncomePerMonth)
	fmt.Fprintf(w, "Final Percentage\t%s\n", calc.Values.FinalPercentage)
}
