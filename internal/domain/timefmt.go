package domain

import (
	"fmt"
	"time"
)

// Seconds-per-megabyte factors measured against whisper.cpp runs on
// commodity hardware. Unknown model names use the base factor.
var estimateFactors = map[string]float64{
	"tiny":   2.0,
	"base":   3.5,
	"small":  6.0,
	"medium": 12.0,
	"large":  25.0,
}

// EstimateTranscription predicts how long transcribing an audio file
// of the given size will take with the given model.
func EstimateTranscription(model string, sizeBytes int64) time.Duration {
	factor, ok := estimateFactors[model]
	if !ok {
		factor = estimateFactors["base"]
	}
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	return time.Duration(sizeMB * factor * float64(time.Second))
}

// FormatClock converts seconds to HH:MM:SS.
func FormatClock(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// FormatShortClock converts seconds to MM:SS, switching to H:MM:SS
// once the offset reaches one hour.
func FormatShortClock(seconds float64) string {
	s := int(seconds)
	if s < 3600 {
		return fmt.Sprintf("%02d:%02d", s/60, s%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// FormatElapsed renders a duration as short prose: "45s", "3m 20s",
// "1h 02m 05s".
func FormatElapsed(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm %ds", s/60, s%60)
	default:
		return fmt.Sprintf("%dh %02dm %02ds", s/3600, (s%3600)/60, s%60)
	}
}
