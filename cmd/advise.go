package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bakewatt/bakewatt/config"
	"github.com/bakewatt/bakewatt/core/advisor"
	"github.com/bakewatt/bakewatt/core/model"
	"github.com/bakewatt/bakewatt/infra/store"
)

var (
	adviseMarket string
	adviseDate   string
	adviseTop    int
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Print the baking recommendation for one market and date",
	RunE:  advise,
}

func init() {
	adviseCmd.Flags().StringVar(&adviseMarket, "market", "", "market column (default from config or table)")
	adviseCmd.Flags().StringVar(&adviseDate, "date", "", "calendar date YYYY-MM-DD (default latest)")
	adviseCmd.Flags().IntVar(&adviseTop, "top", 0, "ranked hours to show, 1..8 (default from config)")
	rootCmd.AddCommand(adviseCmd)
}

func advise(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	table, err := store.New().Get(cfg.Data.Path)
	if err != nil {
		return err
	}

	market := adviseMarket
	if market == "" {
		market = cfg.Advisor.DefaultMarket
	}
	if market == "" || !table.HasMarket(market) {
		market = table.DefaultMarket()
	}
	date := adviseDate
	if date == "" {
		date = table.LatestDate()
	}
	top := adviseTop
	if top == 0 {
		top = cfg.Advisor.DefaultTop
	}
	if top < 1 || top > advisor.MaxTopN {
		return fmt.Errorf("top must be in [1, %d]", advisor.MaxTopN)
	}

	slice, err := table.SelectSlice(market, date)
	if err != nil {
		return err
	}

	adv := advisor.Advisor{OvenPowerKW: cfg.Advisor.OvenPowerKW, BakeHours: cfg.Advisor.BakeHours}
	result := adv.Advise(market, date, slice, top)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Market %s, %s\n\n", result.Market, result.Date)

	cur := result.Current
	fmt.Fprintf(out, "Latest available hour (%s)\n", cur.Time.Format("15:04"))
	fmt.Fprintf(out, "  %s %s\n", severityEmoji(cur.Severity), cur.Label)
	fmt.Fprintf(out, "  Price: %.2f cents/kWh\n", cur.CentsPerKWh)
	fmt.Fprintf(out, "  Baking cost (1h oven): €%.2f\n", cur.BakeCostEUR)
	if cur.DeltaVsAvgPct != nil {
		fmt.Fprintf(out, "  %+.1f%% vs daily average\n", *cur.DeltaVsAvgPct)
	} else {
		fmt.Fprintf(out, "  n/a vs daily average\n")
	}

	avg := result.DayAverage
	fmt.Fprintf(out, "\nSelected day average\n")
	fmt.Fprintf(out, "  %s %s\n", severityEmoji(avg.Severity), avg.Label)
	fmt.Fprintf(out, "  Avg price: %.2f cents/kWh\n", avg.CentsPerKWh)
	fmt.Fprintf(out, "  Avg baking cost: €%.2f\n", avg.BakeCostEUR)

	fmt.Fprintf(out, "\nCheapest hours\n")
	printRanked(out, result.Cheapest)
	fmt.Fprintf(out, "\nMost expensive hours\n")
	printRanked(out, result.Priciest)
	return nil
}

func printRanked(out io.Writer, rows []model.RankedHour) {
	for _, row := range rows {
		fmt.Fprintf(out, "  %s  %6.2f cents/kWh  €%.2f\n", row.Time.Format("15:04"), row.CentsPerKWh, row.BakeCostEUR)
	}
}

func severityEmoji(s model.Severity) string {
	switch s {
	case model.SeverityFavorable:
		return "🥧"
	case model.SeverityUnfavorable:
		return "🍰"
	default:
		return "🧁"
	}
}
