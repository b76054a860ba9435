// Package report renders simulation results.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"cpusched/internal/sched"
)

// Format selects the timeline encoding.
type Format string

const (
	FormatText Format = "text" // "start   end   id" per segment
	FormatCSV  Format = "csv"  // start,end,pid with a header row
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatCSV:
		return Format(s), nil
	}
	return "", &sched.ConfigurationError{Field: "format", Value: s, Reason: "expected text or csv"}
}

// WriteTimeline writes one record per run segment, in timeline order.
func WriteTimeline(w io.Writer, events []sched.Event, format Format) error {
	segs := sched.Segments(events)
	switch format {
	case FormatCSV:
		return writeCSV(w, segs)
	case FormatText, "":
		return writeText(w, segs)
	default:
		return fmt.Errorf("unknown timeline format %q", format)
	}
}

func writeText(w io.Writer, segs []sched.Segment) error {
	for _, s := range segs {
		if _, err := fmt.Fprintf(w, "%d   %d   %d\n", s.Start, s.End, s.PID); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, segs []sched.Segment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "pid"}); err != nil {
		return err
	}
	for _, s := range segs {
		rec := []string{
			strconv.Itoa(s.Start),
			strconv.Itoa(s.End),
			strconv.Itoa(int(s.PID)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
