package types

import (
	"fmt"
	"strings"
)

// Step is one hop in a test tree address: the node's human-readable label
// and its zero-based position among its siblings. Labels need not be
// unique; the ordinal disambiguates.
type Step struct {
	Label   string
	Ordinal int
}

// Path addresses a node in the test tree from the root. Paths are treated
// as immutable: Append copies, so a parent's path can be shared freely
// across siblings.
type Path []Step

// Append returns a new path one step longer. The receiver is not modified.
func (p Path) Append(label string, ordinal int) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, Step{Label: label, Ordinal: ordinal})
}

// String renders the path as a colon-joined label:ordinal chain,
// e.g. "suite:0:comparator:1".
func (p Path) String() string {
	parts := make([]string, 0, len(p)*2)
	for _, s := range p {
		parts = append(parts, s.Label, fmt.Sprintf("%d", s.Ordinal))
	}
	return strings.Join(parts, ":")
}

// Labels returns just the label sequence, used for selection matching.
func (p Path) Labels() []string {
	labels := make([]string, len(p))
	for i, s := range p {
		labels[i] = s.Label
	}
	return labels
}

// IsPrefixOf reports whether other starts with exactly the receiver's
// steps. Every path is a prefix of itself.
func (p Path) IsPrefixOf(other Path) bool {
	if len(p) > len(other) {
		return false
	}
	for i, s := range p {
		if other[i] != s {
			return false
		}
	}
	return true
}

// Equal reports step-wise equality.
func (p Path) Equal(other Path) bool {
	return len(p) == len(other) && p.IsPrefixOf(other)
}
