package stream

import (
	"encoding/json"
	"errors"
	"io"
	"iter"
	"strings"
)

// readBufferSize is the size of a single read from the underlying stream.
const readBufferSize = 4096

// errStopScan is returned by Frames' callback when the consumer stops iterating.
var errStopScan = errors.New("stream: scan stopped")

// NDJSONParser splits decoded text into newline-delimited JSON records of type T.
//
// Lines that are blank after trimming are skipped. Lines that fail to decode are
// dropped and counted; the backend is known to emit partial or empty lines at chunk
// boundaries, so a bad line never aborts the stream.
type NDJSONParser[T any] struct {
	pending strings.Builder
	dropped int
}

// Feed consumes the next piece of text and returns every record completed by it, in
// order. An unterminated trailing fragment is carried to the next call.
func (p *NDJSONParser[T]) Feed(text string) []T {
	if text == "" {
		return nil
	}
	p.pending.WriteString(text)
	buf := p.pending.String()

	last := strings.LastIndexByte(buf, '\n')
	if last < 0 {
		return nil
	}
	complete, rest := buf[:last], buf[last+1:]
	p.pending.Reset()
	p.pending.WriteString(rest)

	var out []T
	for _, line := range strings.Split(complete, "\n") {
		if v, ok := p.parseLine(line); ok {
			out = append(out, v)
		}
	}
	return out
}

// Flush parses whatever is left in the buffer as a final, unterminated line.
func (p *NDJSONParser[T]) Flush() []T {
	rest := p.pending.String()
	p.pending.Reset()
	if v, ok := p.parseLine(rest); ok {
		return []T{v}
	}
	return nil
}

// Dropped reports how many non-blank lines failed to decode.
func (p *NDJSONParser[T]) Dropped() int {
	return p.dropped
}

func (p *NDJSONParser[T]) parseLine(line string) (T, bool) {
	var v T
	line = strings.TrimSpace(line)
	if line == "" {
		return v, false
	}
	if err := json.Unmarshal([]byte(line), &v); err != nil {
		p.dropped++
		return v, false
	}
	return v, true
}

// ScanNDJSON reads r to the end, decoding it as UTF-8 NDJSON, and calls fn once per
// record in arrival order. Each record is handed to fn before the next read, so a
// slow fn slows the producer down. A non-nil error from fn stops the scan and is
// returned as is.
func ScanNDJSON[T any](r io.Reader, fn func(T) error) error {
	dec := NewDecoder()
	var parser NDJSONParser[T]
	buf := make([]byte, readBufferSize)

	emit := func(frames []T) error {
		for _, f := range frames {
			if err := fn(f); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if ferr := emit(parser.Feed(dec.Decode(buf[:n]))); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			if ferr := emit(parser.Feed(dec.Flush())); ferr != nil {
				return ferr
			}
			return emit(parser.Flush())
		}
		if err != nil {
			return err
		}
	}
}

// Frames is the lazy form of ScanNDJSON. The sequence ends with a final (zero, err)
// pair if reading fails. It is single-use: it drains r.
func Frames[T any](r io.Reader) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		err := ScanNDJSON(r, func(v T) error {
			if !yield(v, nil) {
				return errStopScan
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopScan) {
			var zero T
			yield(zero, err)
		}
	}
}
