// Package stream turns raw byte streams into text and framed records: UTF-8 decoding
// with carry-over between reads, newline-delimited JSON framing and the
// Server-Sent-Events grammar.
package stream

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder converts successive byte buffers into text. A multi-byte code point split
// across two buffers is held back until its continuation bytes arrive; ill-formed
// sequences become U+FFFD. A Decoder belongs to exactly one logical stream.
type Decoder struct {
	t       transform.Transformer
	pending []byte
}

// NewDecoder returns a UTF-8 decoder with empty carry-over state.
func NewDecoder() *Decoder {
	return &Decoder{t: unicode.UTF8.NewDecoder()}
}

// Decode returns the text for p plus any bytes held back from earlier calls. Bytes
// that may still be the start of a code point are kept for the next call.
func (d *Decoder) Decode(p []byte) string {
	return d.decode(p, false)
}

// Flush returns whatever is still held back, with incomplete sequences replaced.
// Call it once the underlying stream has ended.
func (d *Decoder) Flush() string {
	return d.decode(nil, true)
}

func (d *Decoder) decode(p []byte, atEOF bool) string {
	src := p
	if len(d.pending) > 0 {
		src = append(d.pending, p...)
		d.pending = nil
	}
	if len(src) == 0 {
		return ""
	}

	var out strings.Builder
	// Every input byte expands to at most one U+FFFD (3 bytes).
	dst := make([]byte, 3*len(src)+utf8.UTFMax)
	for {
		nDst, nSrc, err := d.t.Transform(dst, src, atEOF)
		out.Write(dst[:nDst])
		src = src[nSrc:]

		switch err {
		case nil:
			return out.String()
		case transform.ErrShortSrc:
			d.pending = append([]byte(nil), src...)
			return out.String()
		case transform.ErrShortDst:
			if nSrc == 0 && nDst == 0 {
				dst = make([]byte, 2*len(dst))
			}
		default:
			// The UTF-8 decoder reports no other errors; keep the text we have.
			d.t.Reset()
			return out.String()
		}
	}
}
