package sse

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, stream string) []Event {
	t.Helper()

	dec := NewDecoder(strings.NewReader(stream))
	var events []Event
	for {
		ev, err := dec.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestDecoder_Next(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected []Event
	}{
		{
			name:   "Single data line",
			stream: "data:{\"inventoryId\":\"1\"}\n\n",
			expected: []Event{
				{Type: "message", Data: `{"inventoryId":"1"}`},
			},
		},
		{
			name:   "Leading space after colon is stripped once",
			stream: "data:  two spaces\n\n",
			expected: []Event{
				{Type: "message", Data: " two spaces"},
			},
		},
		{
			name:   "Multiple data lines are joined with newline",
			stream: "data: first\ndata: second\n\n",
			expected: []Event{
				{Type: "message", Data: "first\nsecond"},
			},
		},
		{
			name:   "Event type, id and retry",
			stream: "event: visit\nid: 42\nretry: 1500\ndata: x\n\n",
			expected: []Event{
				{ID: "42", Type: "visit", Data: "x", Retry: 1500 * time.Millisecond},
			},
		},
		{
			name:   "Non numeric retry is ignored",
			stream: "retry: soon\ndata: x\n\n",
			expected: []Event{
				{Type: "message", Data: "x"},
			},
		},
		{
			name:   "Retry in a block without data reaches the next event",
			stream: "retry: 5000\n\ndata: {}\n\n",
			expected: []Event{
				{Type: "message", Data: "{}", Retry: 5 * time.Second},
			},
		},
		{
			name:   "Retry is carried once",
			stream: "retry: 200\ndata: a\n\ndata: b\n\n",
			expected: []Event{
				{Type: "message", Data: "a", Retry: 200 * time.Millisecond},
				{Type: "message", Data: "b"},
			},
		},
		{
			name:   "Comments and unknown fields are ignored",
			stream: ": keep-alive\nfoo: bar\ndata: x\n\n",
			expected: []Event{
				{Type: "message", Data: "x"},
			},
		},
		{
			name:     "Block without data is not dispatched",
			stream:   "event: ping\n\n",
			expected: nil,
		},
		{
			name:   "Empty data line still dispatches",
			stream: "data:\n\n",
			expected: []Event{
				{Type: "message", Data: ""},
			},
		},
		{
			name:   "Id persists across events",
			stream: "id: 7\ndata: a\n\ndata: b\n\n",
			expected: []Event{
				{ID: "7", Type: "message", Data: "a"},
				{ID: "7", Type: "message", Data: "b"},
			},
		},
		{
			name:   "CRLF and CR line endings",
			stream: "data: a\r\n\r\ndata: b\r\rdata: c\n\n",
			expected: []Event{
				{Type: "message", Data: "a"},
				{Type: "message", Data: "b"},
				{Type: "message", Data: "c"},
			},
		},
		{
			name:   "Unterminated trailing event is discarded",
			stream: "data: complete\n\ndata: partial",
			expected: []Event{
				{Type: "message", Data: "complete"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, readAll(t, tt.stream))
		})
	}
}

func TestDecoder_LastEventID(t *testing.T) {
	dec := NewDecoder(strings.NewReader("id: abc\ndata: x\n\n"))

	_, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "abc", dec.LastEventID())
}

func TestWriteEvent_RoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteEvent(&buf, Event{ID: "9", Type: "inventory", Data: "line1\nline2"}))
	require.NoError(t, WriteEvent(&buf, Event{Data: `{"visitId":"v1"}`}))

	assert.Equal(t, "id:9\nevent:inventory\ndata:line1\ndata:line2\n\ndata:{\"visitId\":\"v1\"}\n\n", buf.String())

	events := readAll(t, buf.String())
	require.Len(t, events, 2)
	assert.Equal(t, "line1\nline2", events[0].Data)
	assert.Equal(t, "inventory", events[0].Type)
	assert.Equal(t, `{"visitId":"v1"}`, events[1].Data)
	assert.Equal(t, "9", events[1].ID)
}

func TestSplitData(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "Gateway framed body",
			body:     "data:{\"a\":1}\n\ndata:{\"a\":2}\n\n",
			expected: []string{`{"a":1}`, `{"a":2}`},
		},
		{
			name:     "Empty body",
			body:     "",
			expected: []string{},
		},
		{
			name:     "Whitespace only chunks dropped",
			body:     "data: \n\ndata:{\"a\":1}",
			expected: []string{`{"a":1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitData(tt.body))
		})
	}
}
