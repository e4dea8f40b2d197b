package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	headerLen  = 80
	dataOffset = headerLen + 4
	faceLen    = 12*4 + 2
)

// short name, for convenience
var le = binary.LittleEndian

// IsBinary reports whether any of the first 80 bytes has its high
// bit set. ASCII STL headers are 7-bit text, so that is taken to mean
// a binary file. Shorter inputs are only inspected as far as they go.
func IsBinary(data []byte) bool {
	n := len(data)
	if n > headerLen {
		n = headerLen
	}
	for _, b := range data[:n] {
		if b > 127 {
			return true
		}
	}
	return false
}

// record is the on-disk layout of one face.
type record struct {
	Normal mgl32.Vec3
	Vertex [3]mgl32.Vec3
	Attr   uint16
}

// DecodeBinary decodes binary STL with the default Decoder.
func DecodeBinary(data []byte) (*Mesh, error) {
	return permissive.DecodeBinary(data)
}

// DecodeBinary decodes the 84 byte header and face count, then
// exactly that many 50 byte records. Bytes after the last record are
// ignored.
func (d Decoder) DecodeBinary(data []byte) (*Mesh, error) {
	if data == nil {
		return nil, ErrNoInput
	}
	if len(data) < dataOffset {
		return nil, fmt.Errorf("%w: %d bytes is too short for a binary header", ErrMalformed, len(data))
	}

	faces := uint64(le.Uint32(data[headerLen:dataOffset]))
	avail := uint64(len(data)-dataOffset) / faceLen
	if faces > avail {
		return nil, fmt.Errorf("%w: header declares %d faces, buffer holds %d", ErrMalformed, faces, avail)
	}

	acc := newAccumulator(int(faces))
	r := bytes.NewReader(data[dataOffset : dataOffset+faces*faceLen])
	var rec record
	for face := uint64(0); face < faces; face++ {
		// the length check above guarantees this succeeds
		if err := binary.Read(r, le, &rec); err != nil {
			return nil, fmt.Errorf("%w: face %d: %v", ErrMalformed, face, err)
		}
		if d.Strict && !rec.finite() {
			return nil, fmt.Errorf("%w: face %d has a non-finite component", ErrMalformed, face)
		}
		for _, v := range rec.Vertex {
			acc.add(v, rec.Normal)
		}
	}
	return acc.mesh(), nil
}

func (rec *record) finite() bool {
	vs := [4]mgl32.Vec3{rec.Normal, rec.Vertex[0], rec.Vertex[1], rec.Vertex[2]}
	for _, v := range vs {
		for _, c := range v {
			f := float64(c)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}
