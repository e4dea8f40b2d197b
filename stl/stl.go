// Package stl decodes binary and ASCII STL files into flat,
// non-indexed triangle lists ready for a renderer.
package stl

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoInput = errors.New("stl: no input")
var ErrMalformed = errors.New("stl: malformed input")

// A Mesh is a triangle soup. Every face contributes three vertices to
// Positions and the face normal three times to Normals, so both slices
// always have the same length, a multiple of 9.
type Mesh struct {
	Positions []float32
	Normals   []float32
}

// NumVertices returns the number of vertices in the mesh.
func (m *Mesh) NumVertices() int {
	return len(m.Positions) / 3
}

// NumFaces returns the number of triangles in the mesh.
func (m *Mesh) NumFaces() int {
	return len(m.Positions) / 9
}

// Face reassembles face i. The normal is taken from the face's first
// vertex.
func (m *Mesh) Face(i int) (t Triangle) {
	base := 9 * i
	copy(t.Normal[:], m.Normals[base:base+3])
	for j := range t.Vertex {
		copy(t.Vertex[j][:], m.Positions[base+3*j:base+3*j+3])
	}
	return
}

// Bounds returns the axis aligned box enclosing every position. An
// empty mesh has zero bounds.
func (m *Mesh) Bounds() (b Bounds) {
	for i := 0; i+2 < len(m.Positions); i += 3 {
		p := mgl32.Vec3{m.Positions[i], m.Positions[i+1], m.Positions[i+2]}
		if i == 0 {
			b.Min, b.Max = p, p
			continue
		}
		for c := 0; c < 3; c++ {
			if p[c] < b.Min[c] {
				b.Min[c] = p[c]
			}
			if p[c] > b.Max[c] {
				b.Max[c] = p[c]
			}
		}
	}
	return
}

// Bounds is the region of the coordinate space from Min to Max.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

type Triangle struct {
	Normal mgl32.Vec3
	Vertex [3]mgl32.Vec3
}

var epsilon float32 = 1e-5

// NormalIsUnit reports whether the declared normal has length 1.
func (t Triangle) NormalIsUnit() bool {
	d := 1 - t.Normal.Dot(t.Normal)
	return d < epsilon && d > -epsilon
}

// A Decoder holds the parse options. The zero Decoder is permissive:
// malformed content turns into NaN or odd-sized facets in the output
// instead of an error. Only a buffer too short for the face count it
// declares is always rejected.
type Decoder struct {
	// Strict rejects malformed numbers, non-finite binary components
	// and ASCII facets that do not have exactly 3 vertices.
	Strict bool
}

// Parse sniffs data and decodes it as binary or ASCII STL.
func (d Decoder) Parse(data []byte) (*Mesh, error) {
	if data == nil {
		return nil, ErrNoInput
	}
	if IsBinary(data) {
		return d.DecodeBinary(data)
	}
	return d.DecodeASCII(strings.ToValidUTF8(string(data), "\uFFFD"))
}

// ParseString decodes text that is already known to be ASCII STL.
func (d Decoder) ParseString(text string) (*Mesh, error) {
	return d.DecodeASCII(text)
}

var permissive Decoder

// Parse decodes data with the default, permissive Decoder.
func Parse(data []byte) (*Mesh, error) {
	return permissive.Parse(data)
}

// ParseString decodes ASCII STL text with the default Decoder.
func ParseString(text string) (*Mesh, error) {
	return permissive.ParseString(text)
}

// accumulator appends vertices in the order the decoders hand them over.
type accumulator struct {
	m Mesh
}

func newAccumulator(faces int) *accumulator {
	return &accumulator{m: Mesh{
		Positions: make([]float32, 0, 9*faces),
		Normals:   make([]float32, 0, 9*faces),
	}}
}

func (a *accumulator) add(pos, normal mgl32.Vec3) {
	a.m.Positions = append(a.m.Positions, pos[0], pos[1], pos[2])
	a.m.Normals = append(a.m.Normals, normal[0], normal[1], normal[2])
}

func (a *accumulator) mesh() *Mesh {
	return &a.m
}
