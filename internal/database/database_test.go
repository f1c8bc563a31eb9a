package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndMigrate(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// Migrate is safe to run repeatedly.
	require.NoError(t, Migrate(db))

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'profiles', 'posts')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTimeRoundTripAndOrdering(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	earlier := FormatTime(base)
	later := FormatTime(base.Add(time.Nanosecond))

	assert.Less(t, earlier, later)
	assert.Len(t, earlier, len(later))

	parsed, err := ParseTime(earlier)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(base))

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
