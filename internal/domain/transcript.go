package domain

import (
	"strings"
	"time"
)

// Output format modes.
const (
	FormatSimple     = "simple"
	FormatSegments   = "segments"
	FormatTimestamps = "timestamps"
)

// Segment represents a timed segment of transcribed text
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript represents the full transcription result
type Transcript struct {
	Text          string    `json:"text"`
	Segments      []Segment `json:"segments"`
	Model         string    `json:"model"`
	Language      string    `json:"language"`
	TranscribedAt time.Time `json:"transcribed_at"`
}

// Normalize guarantees that a transcript always carries at least one
// segment. Engines that return plain text only get a single segment
// spanning the whole result, so renderers never see an empty list.
func (t *Transcript) Normalize() {
	if len(t.Segments) == 0 {
		t.Segments = []Segment{{Start: 0, End: 0, Text: t.Text}}
	}
}

// Format renders the transcript in the requested mode. It is total:
// unrecognized modes fall back to the simple rendering.
func (t *Transcript) Format(mode string) string {
	switch mode {
	case FormatSegments:
		return t.toParagraphs()
	case FormatTimestamps:
		return t.toTimestamped()
	default:
		return t.Text
	}
}

// toParagraphs renders each segment's trimmed text as its own
// paragraph separated by a blank line. Empty segments are dropped.
func (t *Transcript) toParagraphs() string {
	var parts []string
	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

// toTimestamped renders each non-empty segment as a short start-time
// line followed by the segment text. With no segments it falls back
// to the full text.
func (t *Transcript) toTimestamped() string {
	var parts []string
	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, FormatShortClock(seg.Start)+"\n"+text)
	}
	if len(parts) == 0 {
		return t.Text
	}
	return strings.Join(parts, "\n")
}

// VideoMeta carries best-effort descriptive data about a remote
// video. Resolution failures leave the title empty rather than
// failing the pipeline.
type VideoMeta struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration,omitempty"`
	Uploader string  `json:"uploader,omitempty"`
}
