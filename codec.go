// codec.go
//
// The codec engine behind all five operations.
//
// Two deliberately separate buffer strategies:
//
//   - Compression output is bounded above in closed form for a given input
//     length, so the working buffer is allocated once at that bound and the
//     stream is encoded in a single shot. No growth loop.
//
//   - Decompression output is unbounded relative to input, so the working
//     buffer starts at a heuristic estimate (4x the input, floored at 256
//     bytes) and doubles whenever the decoder exhausts it, preserving the
//     bytes already produced. Doubling bounds reallocations to
//     O(log(final/initial)) and amortized copying to O(final).
//
// Framing is selected the same way for both directions: gzip (header, CRC-32
// trailer) or raw deflate (no container at all). The zlib-wrapped format is
// intentionally not exposed.
package qdcompress

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
)

type framing int

const (
	frameGzip framing = iota // RFC 1952 container around the deflate stream
	frameRaw                 // bare RFC 1951 deflate stream
)

// Compression level bounds. DefaultLevel is what gzip and deflate use when
// the caller does not pick one; gzip_level clamps into [MinLevel, MaxLevel].
const (
	MinLevel     = 1
	MaxLevel     = 9
	DefaultLevel = 6
)

const (
	// gzip framing overhead: 10-byte header + 8-byte CRC-32/ISIZE trailer.
	gzipOverhead = 18

	// Floor for the initial decompression buffer estimate.
	inflateFloor = 256
)

// deflateBound is the worst-case deflate expansion for n input bytes
// (stored-block overhead per 16 KiB window plus stream framing slack).
func deflateBound(n int) int {
	return n + n>>12 + n>>14 + n>>25 + 13
}

// compressAll encodes src in one shot at the given level and framing.
// The returned slice is sized to the produced length; its spare capacity is
// never handed to callers. Failures carry op-prefixed messages.
func compressAll(op string, src []byte, level int, fr framing) ([]byte, *OpError) {
	bound := deflateBound(len(src))
	if fr == frameGzip {
		bound += gzipOverhead
	}
	buf := bytes.NewBuffer(make([]byte, 0, bound))

	var w io.WriteCloser
	var err error
	switch fr {
	case frameGzip:
		w, err = gzip.NewWriterLevel(buf, level)
	default:
		w, err = flate.NewWriter(buf, level)
	}
	if err != nil {
		return nil, opErrWrap(StatusCompress, op+": init failed", err)
	}

	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, opErrWrap(StatusCompress, op+": compress failed", err)
	}
	// Close flushes the terminating block (and the gzip trailer); output is
	// guaranteed to fit the bound, so anything failing here is unexpected.
	if err := w.Close(); err != nil {
		return nil, opErrWrap(StatusCompress, op+": compress failed", err)
	}
	return buf.Bytes(), nil
}

// decompressAll decodes src under the given framing, growing the output
// buffer by doubling until the decoder reports stream end. maxOut caps the
// produced size in bytes; 0 means unlimited.
//
// Only the first stream in src is decoded: bytes after stream end are
// ignored, matching single-shot inflate semantics.
func decompressAll(op string, src []byte, fr framing, maxOut int) ([]byte, *OpError) {
	var r io.ReadCloser
	switch fr {
	case frameGzip:
		zr, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, opErrWrap(StatusDecompress, op+": decompress failed", err)
		}
		zr.Multistream(false)
		r = zr
	default:
		r = flate.NewReader(bytes.NewReader(src))
	}
	defer r.Close()

	capHint := len(src) * 4
	if capHint < inflateFloor {
		capHint = inflateFloor
	}
	buf := make([]byte, 0, capHint)

	for {
		if len(buf) == cap(buf) {
			// Decoder exhausted the working buffer without reaching
			// stream end: double it, preserving produced bytes.
			if maxOut > 0 && cap(buf) >= maxOut {
				return nil, opErr(StatusDecompress, op+": output exceeds limit")
			}
			grown := make([]byte, len(buf), cap(buf)*2)
			copy(grown, buf)
			buf = grown
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if maxOut > 0 && len(buf) > maxOut {
			return nil, opErr(StatusDecompress, op+": output exceeds limit")
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, opErrWrap(StatusDecompress, op+": decompress failed", err)
		}
	}
	return buf, nil
}
