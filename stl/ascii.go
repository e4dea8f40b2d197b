package stl

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	facetOpen  = "facet"
	facetClose = "endfacet"
)

// DecodeASCII decodes ASCII STL text with the default Decoder.
func DecodeASCII(text string) (*Mesh, error) {
	return permissive.DecodeASCII(text)
}

// DecodeASCII scans text for facet ... endfacet blocks, taking the
// shortest span each time, and emits one vertex per "vertex x y z"
// line inside the block. A block without a "normal x y z" gets the
// zero normal. Text with no blocks gives an empty mesh.
func (d Decoder) DecodeASCII(text string) (*Mesh, error) {
	acc := newAccumulator(strings.Count(text, facetClose))
	pos := 0
	for n := 0; ; n++ {
		block, next, ok := nextFacet(text, pos)
		if !ok {
			break
		}
		pos = next

		var normal mgl32.Vec3
		if ts := triples(block, "normal", 1); len(ts) == 1 {
			var err error
			if normal, err = d.vec(ts[0]); err != nil {
				return nil, fmt.Errorf("%w: facet %d normal: %v", ErrMalformed, n, err)
			}
		}

		ts := triples(block, "vertex", -1)
		if d.Strict && len(ts) != 3 {
			return nil, fmt.Errorf("%w: facet %d has %d vertices", ErrMalformed, n, len(ts))
		}
		for _, t := range ts {
			v, err := d.vec(t)
			if err != nil {
				return nil, fmt.Errorf("%w: facet %d vertex: %v", ErrMalformed, n, err)
			}
			acc.add(v, normal)
		}
	}
	return acc.mesh(), nil
}

// nextFacet finds the first block at or after pos that starts with
// "facet" and ends at the nearest following "endfacet".
func nextFacet(text string, pos int) (block string, next int, ok bool) {
	i := strings.Index(text[pos:], facetOpen)
	if i < 0 {
		return
	}
	start := pos + i
	j := strings.Index(text[start+len(facetOpen):], facetClose)
	if j < 0 {
		return
	}
	next = start + len(facetOpen) + j + len(facetClose)
	return text[start:next], next, true
}

// triples returns the three whitespace separated tokens following
// each occurrence of keyword in s, up to limit matches (all if limit
// is negative). An occurrence not followed by three tokens is skipped.
func triples(s, keyword string, limit int) (out [][3]string) {
	pos := 0
	for limit < 0 || len(out) < limit {
		i := strings.Index(s[pos:], keyword)
		if i < 0 {
			break
		}
		var t [3]string
		end, ok := fields(s, pos+i+len(keyword), t[:])
		if !ok {
			pos += i + 1
			continue
		}
		out = append(out, t)
		pos = end
	}
	return
}

// fields fills dst with tokens from s starting at pos. Each token must
// be preceded by at least one space.
func fields(s string, pos int, dst []string) (int, bool) {
	for k := range dst {
		start := skip(s, pos, true)
		if start == pos {
			return 0, false
		}
		end := skip(s, start, false)
		if end == start {
			return 0, false
		}
		dst[k] = s[start:end]
		pos = end
	}
	return pos, true
}

// skip advances over runes that are (or are not) white space.
func skip(s string, pos int, space bool) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if unicode.IsSpace(r) != space {
			break
		}
		pos += size
	}
	return pos
}

func (d Decoder) vec(t [3]string) (v mgl32.Vec3, err error) {
	for c, tok := range t {
		f, whole := parseFloat(tok)
		if d.Strict && !whole {
			return v, fmt.Errorf("bad number %q", tok)
		}
		v[c] = f
	}
	return
}

var floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

// parseFloat reads the longest numeric literal at the start of tok.
// If there is none the result is NaN. whole reports whether the
// literal covered all of tok.
func parseFloat(tok string) (f float32, whole bool) {
	lit := floatPrefix.FindString(tok)
	if lit == "" {
		return float32(math.NaN()), false
	}
	// out of range values come back as ±Inf or 0 along with an
	// ErrRange, which is what we want
	x, _ := strconv.ParseFloat(lit, 32)
	return float32(x), len(lit) == len(tok)
}
