package outagelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("04:30")
	assert.NoError(t, err)
	assert.Equal(t, BroadcastWindowStart, m)
	assert.Equal(t, "04:30", m.String())

	m, err = ParseMinuteOfDay("22:00")
	assert.NoError(t, err)
	assert.Equal(t, BroadcastWindowEnd, m)

	for _, s := range []string{"", "0430", "24:00", "10:60", "ab:cd"} {
		_, err := ParseMinuteOfDay(s)
		assert.Error(t, err, "expected %q to be rejected", s)
	}
}

func Test_FailureType_IsValid(t *testing.T) {
	for _, ft := range FailureTypes {
		assert.True(t, ft.IsValid())
	}
	assert.False(t, FailureType("Weather").IsValid())
	assert.False(t, FailureType("power").IsValid())
}

func Test_AvailabilityBand(t *testing.T) {
	assert.Equal(t, "excellent", AvailabilityBand(99.5))
	assert.Equal(t, "excellent", AvailabilityBand(100.0))
	assert.Equal(t, "good", AvailabilityBand(99.0))
	assert.Equal(t, "good", AvailabilityBand(99.49))
	assert.Equal(t, "needs attention", AvailabilityBand(98.99))
	assert.Equal(t, "needs attention", AvailabilityBand(0))
}
