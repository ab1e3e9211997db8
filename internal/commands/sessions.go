package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkorkmaz/prosed/internal/db"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List archived test sessions",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		sessions, err := db.ListSessions()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(sessions) == 0 {
			fmt.Println("No archived sessions yet.")
			return
		}

		fmt.Printf("%-17s %-12s %-12s %-8s %6s %6s %6s\n",
			"SESSION", "STOCK", "SERIAL", "STATION", "PASS", "FAIL", "DONE%")
		for _, s := range sessions {
			fmt.Printf("%-17s %-12s %-12s %-8s %6d %6d %5.0f%%\n",
				s.SessionID, s.StockNumber, s.SerialNumber, s.StationNumber,
				s.PassedCount, s.FailedCount, s.CompletionPercentage)
		}
	}),
}
