package amendment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feeEscalation = "42426C4D4F1009EE67080A9B7965B44656D7714D104A72F9B4369F97ABF044EE"

func TestLookupKnownID(t *testing.T) {
	f, ok := Lookup(feeEscalation)
	require.True(t, ok)
	assert.Equal(t, "FeeEscalation", f.Name)
	assert.Equal(t, StatusRetired, f.Status)
	assert.Equal(t, feeEscalation, f.IDHex())

	_, ok = Lookup(strings.ToLower(feeEscalation))
	assert.True(t, ok)
}

func TestLookupRejects(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"not hex", "zz"},
		{"short", feeEscalation[:62]},
		{"unknown", strings.Repeat("0", 64)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Lookup(tc.id)
			assert.False(t, ok)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "FeeEscalation ("+feeEscalation+")", Describe(feeEscalation))
	unknown := strings.Repeat("AB", 32)
	assert.Equal(t, unknown, Describe(unknown))
}

func TestRegistryRoundTrip(t *testing.T) {
	assert.Equal(t, 99, Count())
	for id, f := range features {
		assert.Equal(t, FeatureID(f.Name), id, f.Name)
		got, ok := Lookup(f.IDHex())
		require.True(t, ok, f.Name)
		assert.Same(t, f, got)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "obsolete", StatusObsolete.String())
	assert.Equal(t, "retired", StatusRetired.String())
}
