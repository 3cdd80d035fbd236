package tree

import (
	"regexp"
	"strconv"
	"strings"
)

// Root is the reserved path denoting the tree root itself.
const Root = "."

var indexSegment = regexp.MustCompile(`^\[(\d+)\]$`)

// Segment is a single step in a parsed path. A segment addresses either an
// object key or an array index, never both.
type Segment struct {
	// Key is the object key addressed by this segment. Empty for index
	// segments.
	Key string
	// Index is the array index addressed by this segment, or -1 for key
	// segments.
	Index int
}

// IsIndex reports whether the segment addresses an array index.
func (s Segment) IsIndex() bool {
	return s.Index >= 0
}

// Path is an ordered list of segments. An empty path addresses the tree
// root.
type Path []Segment

// IsRoot reports whether the path addresses the tree root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// ParsePath parses a dotted path string into segments. Segments are split
// on ".". A segment of the form "[N]" or a bare digit string addresses an
// array index; any other token addresses an object key. The reserved path
// "." (or the empty string) addresses the tree root.
func ParsePath(path string) Path {
	if path == Root || path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	segments := make(Path, 0, len(parts))
	for _, part := range parts {
		if m := indexSegment.FindStringSubmatch(part); m != nil {
			i, _ := strconv.Atoi(m[1])
			segments = append(segments, Segment{Key: "", Index: i})
			continue
		}
		if i, err := strconv.Atoi(part); err == nil && i >= 0 {
			segments = append(segments, Segment{Key: "", Index: i})
			continue
		}
		segments = append(segments, Segment{Key: part, Index: -1})
	}
	return segments
}

// Exists reports whether the given path resolves to a node in the tree.
// It returns false, never panicking, on a missing key, an out-of-range
// index, or a type mismatch along the way.
func Exists(root Node, path Path) bool {
	_, ok := resolve(root, path)
	return ok
}

// resolve walks the path and returns the addressed node.
func resolve(root Node, path Path) (Node, bool) {
	cur := root
	for _, seg := range path {
		switch t := cur.(type) {
		case *Object:
			if seg.IsIndex() {
				return nil, false
			}
			child, ok := t.Get(seg.Key)
			if !ok {
				return nil, false
			}
			cur = child
		case *Array:
			if !seg.IsIndex() {
				return nil, false
			}
			child := t.At(seg.Index)
			if child == nil {
				return nil, false
			}
			cur = child
		default:
			return nil, false
		}
	}
	return cur, true
}
