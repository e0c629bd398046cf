package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bimalism/portal/internal/app/accounting"
	"github.com/bimalism/portal/internal/daemon"
	"github.com/bimalism/portal/internal/domain"
	"github.com/bimalism/portal/internal/infra/sqlite"
	"github.com/bimalism/portal/internal/infra/store"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent sessions to show")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show current totals and recent study sessions",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec := svc.Query()
	fmt.Fprintf(os.Stdout, "Coins:       %d (%d earned, %d bonus)\n",
		rec.Coins, domain.EarnedCoins(rec.StudyTime), rec.BonusCoins)
	fmt.Fprintf(os.Stdout, "Study time:  %s (%d seconds)\n",
		domain.FormatStudyTime(rec.StudyTime), rec.StudyTime)
	fmt.Fprintf(os.Stdout, "Last update: %s\n", rec.LastUpdated)

	sessions, err := svc.History(limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stdout, "\nRecent sessions:")
	for _, s := range sessions {
		fmt.Fprintf(os.Stdout, "  %s  %-12s %6ds  %+d coins\n",
			s.RecordedAt.Format("2006-01-02 15:04"), s.Action, s.Seconds, s.CoinsDelta)
	}
	return nil
}

// openService builds an accounting service from the config file for
// one-shot CLI commands. The returned cleanup closes the ledger.
func openService() (*accounting.Service, func(), error) {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg.Storage.DataFile)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	var ledger *sqlite.DB
	if cfg.Ledger.Enabled {
		ledger, err = sqlite.Open(cfg.LedgerDir())
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { ledger.Close() }
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return accounting.NewService(st, ledger, quiet), cleanup, nil
}
