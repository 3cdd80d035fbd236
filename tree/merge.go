package tree

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// Merge combines src into dest and returns the result. The rules are
// checked in order:
//
//  1. dest is an array and src is an array: src's elements are
//     concatenated onto dest.
//  2. dest is an array and src is an object: src is appended to dest as a
//     new element.
//  3. dest and src are both objects: matching keys are merged recursively
//     using these same rules, other keys are set on dest.
//  4. any other combination: src replaces dest.
//
// Merge is not commutative. Call it with the existing tree as dest and the
// incoming fragment as src; the asymmetry governs whether a fragment
// augments or overwrites. dest is mutated in place where possible; the
// returned node must always be used, since rule 4 discards dest.
func Merge(dest, src Node) Node {
	switch d := dest.(type) {
	case *Array:
		switch s := src.(type) {
		case *Array:
			d.elems = append(d.elems, s.elems...)
			return d
		case *Object:
			d.elems = append(d.elems, s)
			return d
		}
		return src
	case *Object:
		s, ok := src.(*Object)
		if !ok {
			return src
		}
		for pair := s.props.Oldest(); pair != nil; pair = pair.Next() {
			if existing, ok := d.Get(pair.Key); ok {
				d.Set(pair.Key, Merge(existing, pair.Value))
			} else {
				d.Set(pair.Key, pair.Value)
			}
		}
		return d
	}
	return src
}

// AddAt merges fragment into the node addressed by path, mutating root in
// place, and returns root. The root path merges fragment into the tree
// itself. A path that does not resolve is a no-op: a diagnostic is logged
// and root is returned unchanged, so callers must not assume the fragment
// was applied.
func AddAt(ctx context.Context, root, fragment Node, path string) Node {
	p := ParsePath(path)
	if p.IsRoot() {
		return Merge(root, fragment)
	}
	if !Exists(root, p) {
		clog.FromContext(ctx).Warnf("tree: cannot add at %q: path does not exist", path)
		return root
	}
	parent, _ := resolve(root, p[:len(p)-1])
	last := p[len(p)-1]
	switch t := parent.(type) {
	case *Object:
		existing, _ := t.Get(last.Key)
		t.Set(last.Key, Merge(existing, fragment))
	case *Array:
		t.elems[last.Index] = Merge(t.elems[last.Index], fragment)
	}
	return root
}

// DeleteAt removes the node addressed by path, mutating root in place, and
// returns root. The root path is a no-op. A path that does not resolve is
// also a no-op with a logged diagnostic, mirroring AddAt.
func DeleteAt(ctx context.Context, root Node, path string) Node {
	p := ParsePath(path)
	if p.IsRoot() {
		return root
	}
	if !Exists(root, p) {
		clog.FromContext(ctx).Warnf("tree: cannot delete at %q: path does not exist", path)
		return root
	}
	parent, _ := resolve(root, p[:len(p)-1])
	last := p[len(p)-1]
	switch t := parent.(type) {
	case *Object:
		t.Delete(last.Key)
	case *Array:
		t.RemoveAt(last.Index)
	}
	return root
}
