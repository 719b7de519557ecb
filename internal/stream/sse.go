package stream

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EventType distinguishes data events from reconnect-interval updates.
type EventType string

const (
	EventTypeEvent             EventType = "event"
	EventTypeReconnectInterval EventType = "reconnect-interval"
)

// DoneSentinel is the data payload OpenAI-style endpoints send as their last event.
// The parser emits it like any other event; consumers decide to stop on it.
const DoneSentinel = "[DONE]"

// Event is one parsed Server-Sent-Event.
type Event struct {
	Type EventType `json:"type"`
	// Event is the value of the `event:` field, empty for unnamed events.
	Event   string `json:"event,omitempty"`
	Data    string `json:"data,omitempty"`
	ID      string `json:"id,omitempty"`
	RetryMs int    `json:"retryMs,omitempty"`
}

// IsDone reports whether the event carries the [DONE] sentinel.
func (e Event) IsDone() bool {
	return e.Type == EventTypeEvent && e.Data == DoneSentinel
}

// SSEParser implements the Server-Sent-Events line grammar over push-fed text. It
// tolerates input split at any offset, including inside a field name or between the
// \r and \n of a line terminator.
type SSEParser struct {
	onEvent func(Event)

	started   bool
	pendingCR bool
	line      strings.Builder

	eventName   string
	data        strings.Builder
	hasData     bool
	lastEventID string
	retryMs     int
}

// NewSSEParser returns a parser that calls onEvent for every complete event.
func NewSSEParser(onEvent func(Event)) *SSEParser {
	return &SSEParser{onEvent: onEvent}
}

// Feed consumes the next piece of text.
func (p *SSEParser) Feed(chunk string) {
	if chunk == "" {
		return
	}
	if !p.started {
		p.started = true
		chunk = strings.TrimPrefix(chunk, "\ufeff")
	}
	if p.pendingCR {
		p.pendingCR = false
		chunk = strings.TrimPrefix(chunk, "\n")
	}

	start := 0
	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		if c != '\r' && c != '\n' {
			continue
		}
		p.line.WriteString(chunk[start:i])
		p.processLine(p.line.String())
		p.line.Reset()

		if c == '\r' {
			if i+1 < len(chunk) {
				if chunk[i+1] == '\n' {
					i++
				}
			} else {
				p.pendingCR = true
			}
		}
		start = i + 1
	}
	p.line.WriteString(chunk[start:])
}

// Reset discards all parser state, including the last event id.
func (p *SSEParser) Reset() {
	onEvent := p.onEvent
	*p = SSEParser{onEvent: onEvent}
}

// LastEventID returns the id of the most recent event that set one.
func (p *SSEParser) LastEventID() string {
	return p.lastEventID
}

// RetryMs returns the last reconnect interval announced by the server.
func (p *SSEParser) RetryMs() int {
	return p.retryMs
}

func (p *SSEParser) processLine(line string) {
	if line == "" {
		p.dispatch()
		return
	}
	if line[0] == ':' {
		return
	}

	field, value := line, ""
	if i := strings.IndexByte(line, ':'); i >= 0 {
		field, value = line[:i], line[i+1:]
		value = strings.TrimPrefix(value, " ")
	}

	switch field {
	case "event":
		p.eventName = value
	case "data":
		if p.hasData {
			p.data.WriteByte('\n')
		}
		p.data.WriteString(value)
		p.hasData = true
	case "id":
		if !strings.ContainsRune(value, 0) {
			p.lastEventID = value
		}
	case "retry":
		ms, err := strconv.Atoi(value)
		if err != nil || ms < 0 || strings.ContainsAny(value, "+-") {
			return
		}
		p.retryMs = ms
		p.onEvent(Event{Type: EventTypeReconnectInterval, RetryMs: ms})
	}
}

func (p *SSEParser) dispatch() {
	if p.hasData {
		p.onEvent(Event{
			Type:  EventTypeEvent,
			Event: p.eventName,
			Data:  p.data.String(),
			ID:    p.lastEventID,
		})
	}
	p.eventName = ""
	p.data.Reset()
	p.hasData = false
}

// ScanSSE reads r to the end and calls fn for every event in order. A non-nil error
// from fn stops the scan and is returned as is.
func ScanSSE(r io.Reader, fn func(Event) error) error {
	dec := NewDecoder()
	var cbErr error
	parser := NewSSEParser(func(ev Event) {
		if cbErr == nil {
			cbErr = fn(ev)
		}
	})
	buf := make([]byte, readBufferSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			parser.Feed(dec.Decode(buf[:n]))
			if cbErr != nil {
				return cbErr
			}
		}
		if errors.Is(err, io.EOF) {
			parser.Feed(dec.Flush())
			return cbErr
		}
		if err != nil {
			return err
		}
	}
}

// WriteEvent encodes ev in the SSE wire format. Multi-line data is split over several
// `data:` lines so that a parser reassembles the same payload.
func WriteEvent(w io.Writer, ev Event) error {
	var b strings.Builder
	if ev.Type == EventTypeReconnectInterval {
		fmt.Fprintf(&b, "retry: %d\n\n", ev.RetryMs)
		_, err := io.WriteString(w, b.String())
		return err
	}
	if ev.Event != "" {
		fmt.Fprintf(&b, "event: %s\n", ev.Event)
	}
	if ev.ID != "" {
		fmt.Fprintf(&b, "id: %s\n", ev.ID)
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
