package parse

import "sort"

// posDoc maps byte offsets in a document to zero based line and column.
type posDoc struct {
	n []int
}

func newPosDoc(d []byte) *posDoc {
	p := &posDoc{}
	for i, c := range d {
		if c == '\n' {
			p.n = append(p.n, i)
		}
	}
	return p
}

func (p *posDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 0, off
	}
	return di, off - p.n[di-1] - 1
}
