package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s := Load(path)

	assert.Equal(t, 10, s.UpdateInterval)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "updates"), s.UpdateFolder)
	assert.FileExists(t, path, "defaults are written back")
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	s := Load(path)
	assert.Equal(t, 10, s.UpdateInterval)
}

func TestLoadClampsStoredInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"update_interval": 2, "update_folder": "/tmp/u"}`), 0644))

	s := Load(path)
	assert.Equal(t, 10, s.UpdateInterval, "sub-floor stored interval resets to default")
	assert.Equal(t, "/tmp/u", s.UpdateFolder)
}

func TestSetUpdateIntervalClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := Load(path)

	s.SetUpdateInterval(2)
	assert.Equal(t, MinUpdateInterval, s.UpdateInterval)

	s.SetUpdateInterval(30)
	assert.Equal(t, 30, s.UpdateInterval)

	// Changes survive a reload.
	again := Load(path)
	assert.Equal(t, 30, again.UpdateInterval)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s := Load(path)

	s.SetUpdateFolder("/srv/updates")
	s.SetLastStation("IST-01")
	s.SetLastSessionMetadata(map[string]string{"stok_no": "ABC123"})

	again := Load(path)
	assert.Equal(t, "/srv/updates", again.UpdateFolder)
	assert.Equal(t, "IST-01", again.LastStation)
	assert.Equal(t, "ABC123", again.LastSessionMetadata["stok_no"])
}
