package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(text string) []*Location {
	var out []*Location
	for loc := range Scan(text) {
		out = append(out, loc)
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []*Location
	}{
		{
			name: "empty input yields empty sequence",
			text: "",
			want: nil,
		},
		{
			name: "raised at with location",
			text: `Raised at file "foo.ml", line 12, characters 3-9`,
			want: []*Location{{File: "foo.ml", Line: 12}},
		},
		{
			name: "unknown location sentinel",
			text: "Raised at unknown location",
			want: []*Location{nil},
		},
		{
			name: "called from frame",
			text: `Called from file "bar.ml", line 7, characters 0-4`,
			want: []*Location{{File: "bar.ml", Line: 7}},
		},
		{
			name: "re-raised frame",
			text: `Re-raised at file "baz.ml", line 3, characters 1-2`,
			want: []*Location{{File: "baz.ml", Line: 3}},
		},
		{
			name: "primitive operation frame",
			text: `Raised by primitive operation at file "prim.ml", line 99, characters 8-20`,
			want: []*Location{{File: "prim.ml", Line: 99}},
		},
		{
			name: "unrecognized lines yield nothing",
			text: "some message\nnot a frame",
			want: []*Location{nil, nil},
		},
		{
			name: "one element per line in input order",
			text: "boom\n" +
				`Raised at file "a.ml", line 1, characters 0-1` + "\n" +
				`Called from file "b.ml", line 2, characters 0-1`,
			want: []*Location{nil, {File: "a.ml", Line: 1}, {File: "b.ml", Line: 2}},
		},
		{
			name: "malformed remainder degrades to nil",
			text: `Raised at file foo.ml line twelve`,
			want: []*Location{nil},
		},
		{
			name: "unparseable line number degrades to nil",
			text: `Raised at file "foo.ml", line 99999999999999999999, characters 3-9`,
			want: []*Location{nil},
		},
		{
			name: "ansi escapes are stripped before matching",
			text: "\x1b[31mRaised at file \"foo.ml\", line 12, characters 3-9\x1b[0m",
			want: []*Location{{File: "foo.ml", Line: 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(tt.text))
		})
	}
}

func TestFirst(t *testing.T) {
	text := "Raised at unknown location\n" +
		`Called from file "late.ml", line 42, characters 2-8`
	loc := First(text)
	require.NotNil(t, loc)
	assert.Equal(t, "late.ml", loc.File)
	assert.Equal(t, 42, loc.Line)

	assert.Nil(t, First("nothing to see"))
	assert.Nil(t, First(""))
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "foo.ml:12", Location{File: "foo.ml", Line: 12}.String())
}
