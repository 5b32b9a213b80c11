// Package packdiff compares the files of two packs.
//
// JSON documents are compared semantically: formatting and key order do
// not matter, and a change is reported as an RFC 7386 merge patch. Other
// text files get a line diff; binary files are only reported as changed.
package packdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/respack/filetree"
)

type Kind int

const (
	Added Kind = iota
	Removed
	Changed
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Change is the difference at one path. For changed JSON documents Patch
// holds the merge patch from the old document to the new one; for other
// text files Lines holds a line diff.
type Change struct {
	Path  string
	Kind  Kind
	Patch []byte
	Lines []Line
}

// Op marks a diff line.
type Op byte

const (
	Equal  Op = ' '
	Insert Op = '+'
	Delete Op = '-'
)

type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	return string(l.Op) + l.Text
}

// Diff compares a with b. Changes are ordered by path.
func Diff(a, b filetree.Source) ([]Change, error) {
	as, err := a.Entries()
	if err != nil {
		return nil, err
	}
	bs, err := b.Entries()
	if err != nil {
		return nil, err
	}
	var res []Change
	i, j := 0, 0
	for i < len(as) || j < len(bs) {
		switch {
		case j == len(bs) || (i < len(as) && as[i].Path < bs[j].Path):
			res = append(res, Change{Path: as[i].Path, Kind: Removed})
			i++
		case i == len(as) || bs[j].Path < as[i].Path:
			res = append(res, Change{Path: bs[j].Path, Kind: Added})
			j++
		default:
			c, err := compare(as[i], bs[j])
			if err != nil {
				return nil, err
			}
			if c != nil {
				res = append(res, *c)
			}
			i++
			j++
		}
	}
	return res, nil
}

func compare(a, b filetree.Entry) (*Change, error) {
	ad, err := a.ReadAll()
	if err != nil {
		return nil, err
	}
	bd, err := b.ReadAll()
	if err != nil {
		return nil, err
	}
	if bytes.Equal(ad, bd) {
		return nil, nil
	}
	c := &Change{Path: a.Path, Kind: Changed}
	if isJSON(a.Path) && json.Valid(ad) && json.Valid(bd) {
		if jsonpatch.Equal(ad, bd) {
			return nil, nil
		}
		if p, err := jsonpatch.CreateMergePatch(ad, bd); err == nil {
			c.Patch = p
			return c, nil
		}
	}
	if isText(ad) && isText(bd) {
		c.Lines = LineDiff(string(ad), string(bd))
	}
	return c, nil
}

func isJSON(p string) bool {
	switch path.Ext(p) {
	case ".json", filetree.MetadataSuffix:
		return true
	}
	return false
}

func isText(d []byte) bool {
	return utf8.Valid(d) && bytes.IndexByte(d, 0) < 0
}

// LineDiff returns the lines of a and b marked as kept, deleted or
// inserted.
func LineDiff(a, b string) []Line {
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)
	var res []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			res = append(res, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return res
}
