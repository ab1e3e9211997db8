package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tkorkmaz/prosed/internal/auth"
	"github.com/tkorkmaz/prosed/internal/engine"
	"github.com/tkorkmaz/prosed/internal/monitor"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

// RunKiosk starts the interactive test session screen.
func RunKiosk(mgr *engine.Manager, user auth.User) error {
	model := NewRunModel(mgr, user)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(RunModel); ok {
		if m.done {
			s := mgr.Session()
			fmt.Printf("✅ Test tamamlandı: %d başarılı, %d başarısız\n", s.PassedCount(), s.FailedCount())
		} else if m.quitting {
			fmt.Println("Test ekranı kapatıldı. Oturum bellekte sürüyor ve güncelleme dosyasına yazıldı.")
		}
	}

	return nil
}

// RunMonitor starts the read-only dashboard over an update file.
func RunMonitor(path string) error {
	p := tea.NewProgram(NewMonitorModel(path), tea.WithAltScreen())

	w, err := monitor.New(path, func(snap *persistence.Snapshot) {
		p.Send(SnapshotMsg{Snapshot: snap})
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := w.Run(ctx); err != nil {
			p.Send(SnapshotMsg{})
		}
	}()

	_, err = p.Run()
	return err
}
