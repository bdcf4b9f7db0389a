// Package transcode converts codepoint sequences to UTF-8 in bounded
// chunks and locates codepoint boundaries inside encoded buffers.
package transcode

import "sockui/internal/errors"

// Encode writes the UTF-8 form of as many leading codepoints of src as
// fit entirely in dst.  It returns how many codepoints were consumed and
// how many bytes were written; consumed < len(src) with a nil error means
// dst ran out of room and the caller should call again with src[consumed:].
//
// Surrogates and values outside [0, 0x10FFFF] yield a KindIllegalSequence
// error, and nothing written by that call may be used.
func Encode(dst []byte, src []rune) (consumed, written int, err error) {
	if len(src) == 0 {
		return 0, 0, nil
	}

	for i, r := range src {
		c := uint32(r)
		room := len(dst) - written
		switch {
		case c < 0x80:
			if room < 1 {
				return i, written, nil
			}
			dst[written] = byte(c)
			written++
		case c < 0x800:
			if room < 2 {
				return i, written, nil
			}
			dst[written] = 0xC0 | byte(c>>6)
			dst[written+1] = 0x80 | byte(c&0x3F)
			written += 2
		case c-0xD800 < 0x800:
			return 0, 0, errors.IllegalSequence("encode", r, i)
		case c < 0x10000:
			if room < 3 {
				return i, written, nil
			}
			dst[written] = 0xE0 | byte(c>>12)
			dst[written+1] = 0x80 | byte(c>>6&0x3F)
			dst[written+2] = 0x80 | byte(c&0x3F)
			written += 3
		case c < 0x110000:
			if room < 4 {
				return i, written, nil
			}
			dst[written] = 0xF0 | byte(c>>18)
			dst[written+1] = 0x80 | byte(c>>12&0x3F)
			dst[written+2] = 0x80 | byte(c>>6&0x3F)
			dst[written+3] = 0x80 | byte(c&0x3F)
			written += 4
		default:
			return 0, 0, errors.IllegalSequence("encode", r, i)
		}
	}
	return len(src), written, nil
}

// OffsetAfter returns the byte offset just past the first count
// codepoints of the UTF-8 buffer buf.  buf must hold at least count
// complete codepoints.
func OffsetAfter(buf []byte, count int) int {
	if count <= 0 {
		return 0
	}

	off := 0
	var lead byte
	for count > 0 {
		b := buf[off]
		off++
		if b&0xC0 != 0x80 {
			lead = b
			count--
		}
	}

	// off sits one past the last lead byte; skip its continuation bytes.
	switch {
	case lead >= 0xF0:
		off += 3
	case lead >= 0xE0:
		off += 2
	case lead >= 0xC0:
		off++
	}
	return off
}
