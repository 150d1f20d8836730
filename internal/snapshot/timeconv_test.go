package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisToISO(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00.000Z", MillisToISO(0))
	assert.Equal(t, "2025-06-15T12:30:45.123Z", MillisToISO(1749990645123))
}

func TestISOToMillis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"millisecond precision", "2025-06-15T12:30:45.123Z", 1749990645123},
		{"no fraction", "2025-06-15T12:30:45Z", 1749990645000},
		{"offset", "2025-06-15T14:30:45.123+02:00", 1749990645123},
		{"bare date", "2025-06-15", 1749945600000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ISOToMillis(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestISOToMillis_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "15/06/2025", "2025-13-45"} {
		_, err := ISOToMillis(in)
		assert.Error(t, err, in)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	ms := int64(1700000000123)
	back, err := ISOToMillis(MillisToISO(ms))
	require.NoError(t, err)
	assert.Equal(t, ms, back)
}
