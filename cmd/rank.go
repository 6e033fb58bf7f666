package cmd

import (
	"encoding/json"
	"os"

	"github.com/epeers/twrank/internal/handlers"
	"github.com/epeers/twrank/internal/models"
	"github.com/epeers/twrank/internal/services"
	"github.com/spf13/cobra"
)

var (
	rankDate     string
	rankTop      int
	rankMarket   string
	latestTop    int
	latestMarket string
	latestDays   int
)

var rankCMD = &cobra.Command{
	Use:   "rank",
	Short: "Print the turnover ranking for one trading date as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := models.ParseTradingDate(rankDate)
		if err != nil {
			return err
		}
		filter, err := models.ParseMarketFilter(rankMarket)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, wc := services.NewWarningContext(cmd.Context())
		records, err := a.rankingSvc.GetRanking(ctx, date, rankTop, filter)
		if err != nil {
			return err
		}

		return printJSON(models.RankingResponse{
			Success:  true,
			Date:     date,
			Count:    len(records),
			Data:     records,
			Warnings: wc.GetWarnings(),
		})
	},
}

var latestCMD = &cobra.Command{
	Use:   "latest",
	Short: "Print the ranking for the most recent trading date with data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := models.ParseMarketFilter(latestMarket)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, wc := services.NewWarningContext(cmd.Context())
		records, date, err := a.rankingSvc.FindLatest(ctx, filter, latestTop, latestDays)
		if err != nil {
			return err
		}

		return printJSON(models.RankingResponse{
			Success:      true,
			Date:         date,
			AutoDetected: true,
			Count:        len(records),
			Data:         records,
			Warnings:     wc.GetWarnings(),
		})
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func init() {
	rankCMD.Flags().StringVar(&rankDate, "date", "", "trading date (YYYYMMDD)")
	rankCMD.Flags().IntVar(&rankTop, "top", handlers.DefaultTopN, "number of rows")
	rankCMD.Flags().StringVar(&rankMarket, "market", "all", "all, listed or otc")
	_ = rankCMD.MarkFlagRequired("date")

	latestCMD.Flags().IntVar(&latestTop, "top", handlers.DefaultTopN, "number of rows")
	latestCMD.Flags().StringVar(&latestMarket, "market", "all", "all, listed or otc")
	latestCMD.Flags().IntVar(&latestDays, "lookback", 0, "calendar days to walk back (0 uses MAX_LOOKBACK_DAYS)")
}
