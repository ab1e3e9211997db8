package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tkorkmaz/prosed/internal/db"
	"github.com/tkorkmaz/prosed/internal/export"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

var exportFlags struct {
	out      string
	snapshot string
}

var exportCmd = &cobra.Command{
	Use:   "export [session-id]",
	Short: "Export a session report as CSV",
	Long: `Export an archived session, or a continuous update file, as CSV.

Examples:
  prosed export 20260830_142501 --out report.csv
  prosed export --snapshot updates/GuncellemeRaporu_ST-01_20260830.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := os.Stdout
		if exportFlags.out != "" {
			f, err := os.Create(exportFlags.out)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer f.Close()
			out = f
		}

		if exportFlags.snapshot != "" {
			snap, err := persistence.ReadSnapshot(exportFlags.snapshot)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if err := export.WriteSnapshot(out, snap); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		if len(args) != 1 {
			fmt.Println("Error: a session id or --snapshot file is required")
			return
		}
		initDB()
		session, err := db.GetSession(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := export.WriteSession(out, session); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFlags.snapshot, "snapshot", "", "export a continuous update file instead of an archived session")
}
