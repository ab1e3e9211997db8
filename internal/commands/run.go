package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkorkmaz/prosed/internal/auth"
	"github.com/tkorkmaz/prosed/internal/db"
	"github.com/tkorkmaz/prosed/internal/engine"
	"github.com/tkorkmaz/prosed/internal/models"
	"github.com/tkorkmaz/prosed/internal/procedure"
	"github.com/tkorkmaz/prosed/internal/settings"
	"github.com/tkorkmaz/prosed/internal/tui"
)

var runFlags struct {
	stock    string
	serial   string
	station  string
	sip      string
	role     string
	username string
	password string
	updates  string
}

var runCmd = &cobra.Command{
	Use:   "run [procedure.json]",
	Short: "Run a test procedure in the kiosk screen",
	Long: `Run a test procedure from a JSON step definition file.

Examples:
  prosed run checks.json --station ST-01 --stock ABC123
  prosed run checks.json --role admin --username admin --password admin123`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := procedure.Load(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		prosedDir, err := settings.DefaultDir()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		settingsPath, _ := settings.DefaultPath()
		cfg := settings.Load(settingsPath)
		store := auth.Load(filepath.Join(prosedDir, "users.json"))

		user, err := login(store)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if runFlags.station == "" {
			runFlags.station = cfg.LastStation
		}

		session := models.NewSession(models.SessionInfo{
			StockNumber:   runFlags.stock,
			SerialNumber:  runFlags.serial,
			StationNumber: runFlags.station,
			SIPCode:       runFlags.sip,
		}, nil, time.Now())
		session.Steps = steps

		engineCfg := engine.DefaultConfig()
		engineCfg.PersistEvery = cfg.UpdateInterval
		mgr := engine.NewManager(engineCfg, nil, nil)

		updatesDir := runFlags.updates
		if updatesDir == "" {
			updatesDir = cfg.UpdateFolder
		}
		if !mgr.Writer().SetDirectory(updatesDir) {
			fmt.Printf("⚠️  Güncelleme klasörü kullanılamıyor: %s (teste devam ediliyor)\n", updatesDir)
		} else if updatesDir != cfg.UpdateFolder {
			cfg.SetUpdateFolder(updatesDir)
		}

		if err := mgr.Load(session); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		cfg.SetLastStation(runFlags.station)

		if err := tui.RunKiosk(mgr, user); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if mgr.State() == models.RunCompleted {
			initDB()
			if _, err := db.ArchiveSession(session, time.Now()); err != nil {
				fmt.Printf("⚠️  Oturum arşivlenemedi: %v\n", err)
			} else {
				fmt.Printf("🗃️  Oturum arşivlendi: %s\n", session.SessionID)
			}
		}
		if mgr.Writer().Enabled() {
			fmt.Printf("Güncelleme dosyası: %s\n", mgr.Writer().Path())
		}
	},
}

// login resolves the acting user from the role flags. Operators need no
// password; admin and developer logins are checked against users.json.
func login(store *auth.Store) (auth.User, error) {
	switch runFlags.role {
	case "", "operator":
		return store.OperatorLogin(runFlags.username), nil
	case "admin", "developer":
		if runFlags.username != "" {
			return store.Authenticate(runFlags.username, runFlags.password)
		}
		return store.AuthenticateByPassword(runFlags.password)
	default:
		return auth.User{}, fmt.Errorf("unknown role %q", runFlags.role)
	}
}

func init() {
	runCmd.Flags().StringVar(&runFlags.stock, "stock", "", "stock number (STOK NO)")
	runCmd.Flags().StringVar(&runFlags.serial, "serial", "", "serial number (SERİ)")
	runCmd.Flags().StringVar(&runFlags.station, "station", "", "station number (İSTASYON)")
	runCmd.Flags().StringVar(&runFlags.sip, "sip", "", "SIP code (SİP)")
	runCmd.Flags().StringVar(&runFlags.role, "role", "operator", "login role: operator, admin or developer")
	runCmd.Flags().StringVar(&runFlags.username, "username", "", "username in users.json")
	runCmd.Flags().StringVar(&runFlags.password, "password", "", "password for admin/developer logins")
	runCmd.Flags().StringVar(&runFlags.updates, "updates-dir", "", "directory for the continuous update file")
}
