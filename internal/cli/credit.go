package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(creditCmd)
}

var creditCmd = &cobra.Command{
	Use:   "credit AMOUNT",
	Short: "Credit coins directly to the bonus pool",
	Long: `Add coins without recording study time, e.g. as a reward granted
outside the study timer. The amount must be a non-negative integer.`,
	Args: cobra.ExactArgs(1),
	RunE: runCredit,
}

func runCredit(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("amount must be an integer: %q", args[0])
	}

	svc, cleanup, err := openService()
	if err != nil {
		return err
	}
	defer cleanup()

	rec, err := svc.Credit(amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Credited %d coins, balance is now %d\n", amount, rec.Coins)
	return nil
}
