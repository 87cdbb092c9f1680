package audio

import (
	"encoding/binary"
	"io"
	"math"
)

// Float32Reader serializes float32 samples as PCMFormatFloat32LE.
type Float32Reader struct {
	Samples []float32
	pos     int
}

var _ io.Reader = (*Float32Reader)(nil)

func NewFloat32Reader(samples []float32) *Float32Reader {
	return &Float32Reader{Samples: samples}
}

func (r *Float32Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.Samples) {
		return 0, io.EOF
	}
	n := 0
	for ; n+4 <= len(p) && r.pos < len(r.Samples); n += 4 {
		binary.LittleEndian.PutUint32(p[n:], math.Float32bits(r.Samples[r.pos]))
		r.pos++
	}
	return n, nil
}

// Float32StreamReader is anything that yields interleaved float32 samples,
// e.g. *oggvorbis.Reader.
type Float32StreamReader interface {
	Read(p []float32) (int, error)
}

// ReaderFromFloat32Reader serializes a Float32StreamReader as
// PCMFormatFloat32LE.
type ReaderFromFloat32Reader struct {
	Backend Float32StreamReader
	buffer  []float32
}

var _ io.Reader = (*ReaderFromFloat32Reader)(nil)

func NewReaderFromFloat32Reader(r Float32StreamReader) *ReaderFromFloat32Reader {
	return &ReaderFromFloat32Reader{Backend: r}
}

func (r *ReaderFromFloat32Reader) Read(p []byte) (int, error) {
	count := len(p) / 4
	if count == 0 {
		return 0, io.ErrShortBuffer
	}
	if cap(r.buffer) < count {
		r.buffer = make([]float32, count)
	}
	buf := r.buffer[:count]
	n, err := r.Backend.Read(buf)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(buf[i]))
	}
	return n * 4, err
}
