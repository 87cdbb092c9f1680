package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrTranscriptionFailure wraps any failure of a Transcriber backend.
var ErrTranscriptionFailure = errors.New("transcription failed")

type Segment struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// Transcriber turns a whole captured session (mono float32 samples in
// [-1, 1] at SampleRate) into text segments in chronological order.
type Transcriber interface {
	io.Closer

	SampleRate() uint32
	Transcribe(ctx context.Context, samples []float32, language string) ([]Segment, error)
}

// WriteSegments prints one segment per line.
func WriteSegments(w io.Writer, segments []Segment, withTimestamps bool) error {
	for _, segment := range segments {
		var err error
		if withTimestamps {
			_, err = fmt.Fprintf(w, "[%s -> %s] %s\n", formatTimestamp(segment.Start), formatTimestamp(segment.End), segment.Text)
		} else {
			_, err = fmt.Fprintln(w, segment.Text)
		}
		if err != nil {
			return fmt.Errorf("unable to write a segment: %w", err)
		}
	}
	return nil
}

func formatTimestamp(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}

// JoinText concatenates the texts of the segments separated by spaces.
func JoinText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
