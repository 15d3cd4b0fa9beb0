package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:02", FormatClock(2))
	assert.Equal(t, "00:02:05", FormatClock(125))
	assert.Equal(t, "01:01:01", FormatClock(3661))
}

func TestFormatShortClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatShortClock(0))
	assert.Equal(t, "00:02", FormatShortClock(2))
	assert.Equal(t, "59:59", FormatShortClock(3599))
	assert.Equal(t, "1:00:00", FormatShortClock(3600))
	assert.Equal(t, "2:05:09", FormatShortClock(7509))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "45s", FormatElapsed(45*time.Second))
	assert.Equal(t, "3m 20s", FormatElapsed(200*time.Second))
	assert.Equal(t, "1h 02m 05s", FormatElapsed(3725*time.Second))
}

func TestEstimateTranscription(t *testing.T) {
	tenMB := int64(10 * 1024 * 1024)

	assert.Equal(t, 20*time.Second, EstimateTranscription("tiny", tenMB))
	assert.Equal(t, 35*time.Second, EstimateTranscription("base", tenMB))
	assert.Equal(t, 250*time.Second, EstimateTranscription("large", tenMB))

	// Unknown models fall back to the base factor.
	assert.Equal(t, 35*time.Second, EstimateTranscription("turbo-xl", tenMB))
}
