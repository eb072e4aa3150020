// Package sse reads and writes the text/event-stream wire format used by the
// gateway's push endpoints.
package sse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ContentType is the media type of an event stream.
const ContentType = "text/event-stream"

// DefaultEventType is the type of events that carry no "event" field.
const DefaultEventType = "message"

// Event is one dispatched server-sent event.
type Event struct {
	ID    string
	Type  string
	Data  string
	Retry time.Duration
}

// Decoder reads events from an event stream.
type Decoder struct {
	scanner *bufio.Scanner
	lastID  string
	// retry is applied as soon as its line is read and carried by the next
	// dispatched event, even when its own block had no data.
	retry time.Duration
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(scanLines)
	return &Decoder{scanner: scanner}
}

// LastEventID returns the last event id seen on the stream.
func (d *Decoder) LastEventID() string {
	return d.lastID
}

// Next blocks until the next event is dispatched.
// It returns io.EOF when the stream ends; a trailing event that was never
// terminated by a blank line is discarded.
func (d *Decoder) Next() (Event, error) {
	var (
		data    strings.Builder
		hasData bool
		ev      Event
	)

	for d.scanner.Scan() {
		line := d.scanner.Text()

		if line == "" {
			if !hasData {
				ev = Event{}
				continue
			}
			ev.Data = data.String()
			ev.ID = d.lastID
			ev.Retry, d.retry = d.retry, 0
			if ev.Type == "" {
				ev.Type = DefaultEventType
			}
			return ev, nil
		}

		if line[0] == ':' {
			continue
		}

		field, value := line, ""
		if i := strings.IndexByte(line, ':'); i >= 0 {
			field = line[:i]
			value = strings.TrimPrefix(line[i+1:], " ")
		}

		switch field {
		case "event":
			ev.Type = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				d.lastID = value
			}
		case "retry":
			if ms, err := strconv.ParseUint(value, 10, 63); err == nil {
				d.retry = time.Duration(ms) * time.Millisecond
			}
		}
	}

	if err := d.scanner.Err(); err != nil {
		return Event{}, fmt.Errorf("failed to read event stream: %w", err)
	}

	return Event{}, io.EOF
}

// WriteEvent writes ev to w in wire format. Data lines are written as
// "data:<line>" without a space, the way the gateway emits them.
func WriteEvent(w io.Writer, ev Event) error {
	var b strings.Builder

	if ev.ID != "" {
		b.WriteString("id:")
		b.WriteString(ev.ID)
		b.WriteByte('\n')
	}
	if ev.Type != "" && ev.Type != DefaultEventType {
		b.WriteString("event:")
		b.WriteString(ev.Type)
		b.WriteByte('\n')
	}
	if ev.Retry > 0 {
		b.WriteString("retry:")
		b.WriteString(strconv.FormatInt(ev.Retry.Milliseconds(), 10))
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		b.WriteString("data:")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// SplitData splits a fully buffered event-stream body into its data chunks.
// It is the lenient path used when a stream is fetched as plain text: the body
// is cut on every "data:" marker and empty chunks are dropped.
func SplitData(body string) []string {
	parts := strings.Split(body, "data:")
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, part)
	}
	return chunks
}

// scanLines is a bufio.SplitFunc accepting LF, CRLF and lone CR line endings.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// CR: need one more byte to know whether it is CRLF.
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
