package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkorkmaz/prosed/internal/settings"
	"github.com/tkorkmaz/prosed/internal/tui"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor [update-file.json]",
	Short: "Follow an in-progress test from its continuous update file",
	Long: `Watch a continuous update file and render a live dashboard.
With no argument the newest update file in the configured folder is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			settingsPath, err := settings.DefaultPath()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			cfg := settings.Load(settingsPath)
			path = newestUpdateFile(cfg.UpdateFolder)
			if path == "" {
				fmt.Printf("Error: no update files in %s\n", cfg.UpdateFolder)
				return
			}
		}

		if err := tui.RunMonitor(path); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

// newestUpdateFile returns the most recently modified update file in dir.
func newestUpdateFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var newest string
	var newestMod int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "GuncellemeRaporu") || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest = filepath.Join(dir, e.Name())
			newestMod = mod
		}
	}
	return newest
}
