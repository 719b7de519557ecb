package stream_test

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yanyu/backend/internal/stream"
)

func parseAll(chunks ...string) []stream.Event {
	var events []stream.Event
	p := stream.NewSSEParser(func(ev stream.Event) { events = append(events, ev) })
	for _, c := range chunks {
		p.Feed(c)
	}
	return events
}

func TestSSEParser_Grammar(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []stream.Event
	}{
		{
			name:  "single data event",
			input: "data: hello\n\n",
			want:  []stream.Event{{Type: stream.EventTypeEvent, Data: "hello"}},
		},
		{
			name:  "space after colon is optional",
			input: "data:hello\n\n",
			want:  []stream.Event{{Type: stream.EventTypeEvent, Data: "hello"}},
		},
		{
			name:  "multiple data lines join with newline",
			input: "data: a\ndata: b\n\n",
			want:  []stream.Event{{Type: stream.EventTypeEvent, Data: "a\nb"}},
		},
		{
			name:  "named event with id",
			input: "event: token\nid: 7\ndata: {}\n\n",
			want:  []stream.Event{{Type: stream.EventTypeEvent, Event: "token", ID: "7", Data: "{}"}},
		},
		{
			name:  "comments are ignored",
			input: ": keep-alive\ndata: x\n\n",
			want:  []stream.Event{{Type: stream.EventTypeEvent, Data: "x"}},
		},
		{
			name:  "retry emits reconnect interval",
			input: "retry: 3000\n\n",
			want:  []stream.Event{{Type: stream.EventTypeReconnectInterval, RetryMs: 3000}},
		},
		{
			name:  "invalid retry is ignored",
			input: "retry: soon\n\n",
			want:  nil,
		},
		{
			name:  "done sentinel is a normal event",
			input: "data: {\"a\":1}\n\ndata: [DONE]\n\n",
			want: []stream.Event{
				{Type: stream.EventTypeEvent, Data: `{"a":1}`},
				{Type: stream.EventTypeEvent, Data: "[DONE]"},
			},
		},
		{
			name:  "crlf and cr terminators",
			input: "data: a\r\n\r\ndata: b\r\r",
			want: []stream.Event{
				{Type: stream.EventTypeEvent, Data: "a"},
				{Type: stream.EventTypeEvent, Data: "b"},
			},
		},
		{
			name:  "unterminated event is not emitted",
			input: "data: partial\n",
			want:  nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseAll(tc.input))
		})
	}
}

func TestSSEParser_IDIsRetainedAcrossEvents(t *testing.T) {
	events := parseAll("id: 1\ndata: a\n\ndata: b\n\n")
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "1", events[1].ID)
}

func TestSSEParser_SplitBetweenCRAndLF(t *testing.T) {
	events := parseAll("data: a\r", "\n\r", "\ndata: b\r\n\r\n")
	assert.Equal(t, []stream.Event{
		{Type: stream.EventTypeEvent, Data: "a"},
		{Type: stream.EventTypeEvent, Data: "b"},
	}, events)
}

func TestSSEParser_AnyChunkingYieldsSameEvents(t *testing.T) {
	input := ": comment\r\n" +
		"event: delta\nid: 42\ndata: {\"choices\":[{\"delta\":{\"content\":\"你好\"}}]}\n\n" +
		"retry: 1500\n\n" +
		"data: line one\r\ndata: line two\r\n\r\n" +
		"data: [DONE]\n\n"
	want := parseAll(input)
	require.Len(t, want, 4)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 300; i++ {
		var got []stream.Event
		err := stream.ScanSSE(&chunkReader{parts: splitRandomly(rng, []byte(input))}, func(ev stream.Event) error {
			got = append(got, ev)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestScanSSE_CallbackErrorStops(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := stream.ScanSSE(strings.NewReader("data: 1\n\ndata: 2\n\n"), func(stream.Event) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWriteEvent_RoundTrip(t *testing.T) {
	events := []stream.Event{
		{Type: stream.EventTypeEvent, Data: `{"response":"Hel","done":false}`},
		{Type: stream.EventTypeEvent, Event: "error", ID: "9", Data: "multi\nline"},
		{Type: stream.EventTypeReconnectInterval, RetryMs: 250},
		{Type: stream.EventTypeEvent, Data: ""},
	}

	var buf bytes.Buffer
	for _, ev := range events {
		require.NoError(t, stream.WriteEvent(&buf, ev))
	}
	assert.True(t, strings.HasPrefix(buf.String(), "data: {\"response\":\"Hel\",\"done\":false}\n\n"))

	got := parseAll(buf.String())
	require.Len(t, got, 4)
	assert.Equal(t, events[0], got[0])
	assert.Equal(t, events[1], got[1])
	assert.Equal(t, events[2], got[2])
	// The id set by the second event is retained by later events.
	assert.Equal(t, stream.Event{Type: stream.EventTypeEvent, ID: "9"}, got[3])
}
