package main

import "github.com/pkg/errors"

// LinkError records one unresolved LineRef, the line it sat in (-1 if none
// -- the reference appeared at immediate-command top level), per
// spec.md section 4.6 / original_source/run.c's link(). Err wraps the same
// information through github.com/pkg/errors so --trace's "%+v" output shows
// the frame that discovered the unresolved reference.
type LinkError struct {
	Target    float64
	Enclosing float64
	HasLine   bool
	Err       error
}

// Link walks root's tree resolving every LineRef against store, recursing
// into every Args slot and following Next siblings, tracking the nearest
// enclosing NumberedLine number as it goes. Unresolved targets (Num >= 0,
// no matching stored line) are collected and returned; a LineRef with
// Num < 0 ("unspecified", e.g. a bare RESTORE) is left unlinked and is
// not an error.
func Link(root *Node, store *ProgramStore) []LinkError {
	var errs []LinkError
	var walk func(n *Node, lNum float64, hasLine bool)
	walk = func(n *Node, lNum float64, hasLine bool) {
		for cur := n; cur != nil; cur = cur.Next {
			if cur.Kind == KindNumberedLine {
				lNum, hasLine = cur.Num, true
			}
			for _, a := range cur.Args {
				if a != nil {
					walk(a, lNum, hasLine)
				}
			}
			if cur.Kind != KindLineRef {
				continue
			}
			if cur.Num < 0 {
				cur.Link = nil
				continue
			}
			if target := store.Find(cur.Num); target != nil {
				cur.Link = target
			} else {
				err := errors.Errorf("can't find line %v", cur.Num)
				errs = append(errs, LinkError{Target: cur.Num, Enclosing: lNum, HasLine: hasLine, Err: err})
			}
		}
	}
	walk(root, -1, false)
	return errs
}
