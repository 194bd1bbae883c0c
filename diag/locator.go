// Package diag recovers source locations from free-form diagnostic text,
// such as the backtrace an assertion helper captures when a check fails.
package diag

import (
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// Location is a (file, line) pair recovered from one stack-frame record.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// framePrefixes are the recognized stack-frame record openers, probed in
// order. Only a line starting with one of these is treated as a frame.
var framePrefixes = []string{
	"Raised at",
	"Re-raised at",
	"Raised by primitive operation at",
	"Called from",
}

// noLocation is the literal sentinel a frame carries when the producer
// had no source information for it.
const noLocation = "unknown location"

// locationPattern extracts the (file, line) pair from a frame remainder:
// `file "NAME", line N` with anything (column ranges etc.) allowed after.
var locationPattern = regexp.MustCompile(`^file "([^"]+)", line (\d+)`)

// Scan lazily parses text line by line, yielding one element per input
// line in order: a *Location when the line is a recognizable stack-frame
// record with source information, nil otherwise. Malformed input never
// faults; it degrades to nil for the offending line. The sequence is
// single-pass and recomputed on every call.
func Scan(text string) iter.Seq[*Location] {
	return func(yield func(*Location) bool) {
		if text == "" {
			return
		}
		for _, line := range strings.Split(text, "\n") {
			if !yield(parseLine(stripansi.Strip(line))) {
				return
			}
		}
	}
}

// First returns the first location Scan yields, or nil when the text
// carries none.
func First(text string) *Location {
	for loc := range Scan(text) {
		if loc != nil {
			return loc
		}
	}
	return nil
}

func parseLine(line string) *Location {
	rest, ok := frameRemainder(strings.TrimSpace(line))
	if !ok {
		return nil
	}
	if rest == noLocation {
		return nil
	}
	m := locationPattern.FindStringSubmatch(rest)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Digits too large for an int still parse as "no location".
		return nil
	}
	return &Location{File: m[1], Line: n}
}

// frameRemainder strips the longest matching frame prefix and the space
// after it, reporting whether the line was a frame record at all.
func frameRemainder(line string) (string, bool) {
	match := ""
	for _, p := range framePrefixes {
		if strings.HasPrefix(line, p+" ") && len(p) > len(match) {
			match = p
		}
	}
	if match == "" {
		return "", false
	}
	return strings.TrimPrefix(line, match+" "), true
}
