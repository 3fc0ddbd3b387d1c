package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"valid with timezone", Config{DataDir: "/tmp/lab", Timezone: "America/Lima"}, nil},
		{"valid without timezone", Config{DataDir: "/tmp/lab"}, nil},
		{"empty data dir", Config{Timezone: "UTC"}, ErrDataDirEmpty},
		{"bogus timezone", Config{DataDir: "/tmp/lab", Timezone: "Mars/Olympus"}, ErrTimezoneInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigLocation(t *testing.T) {
	loc := Config{DataDir: "x", Timezone: "America/Lima"}.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/Lima", loc.String())

	assert.Equal(t, time.Local, Config{DataDir: "x"}.Location())
	assert.Equal(t, time.Local, Config{DataDir: "x", Timezone: "nope"}.Location())
}

func TestTimeRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	orig := time.Date(2025, 8, 28, 14, 30, 5, 0, loc)
	s := FormatTime(orig)
	assert.Equal(t, "2025-08-28 14:30:05-0500", s)

	parsed, err := ParseTime(s)
	require.NoError(t, err)
	assert.True(t, orig.Equal(parsed))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate(""))
	assert.True(t, ValidDate("2025-08-28"))
	assert.False(t, ValidDate("28/08/2025"))
	assert.False(t, ValidDate("2025-13-01"))
}
