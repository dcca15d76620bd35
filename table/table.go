package table

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"dblite/pager"
)

// ErrDuplicateKey is returned when an insert carries a key already stored
// in the tree.
var ErrDuplicateKey = errors.New("duplicate key")

// Table binds a database file to the one fixed-schema table it holds. The
// root is always page 0.
type Table struct {
	pager       *pager.Pager
	rootPageNum uint32
}

// Open opens the database file behind path. A brand-new file gets page 0
// initialized as an empty root leaf.
func Open(path string) (*Table, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	t := &Table{pager: p, rootPageNum: 0}
	if p.NumPages() == 0 {
		page, err := p.GetPage(t.rootPageNum)
		if err != nil {
			return nil, err
		}
		root := initLeafNode(page)
		root.SetRoot(true)
	}
	return t, nil
}

// Close flushes every cached page and closes the file.
func (t *Table) Close() error {
	return t.pager.Close()
}

// ExecuteInsert places the row at its key-ordered position, rejecting
// duplicate keys.
func (t *Table) ExecuteInsert(r Row) error {
	c, err := tableFind(t, r.ID)
	if err != nil {
		return err
	}
	page, err := t.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	l := leaf(page)
	if c.cellNum < l.NumCells() && l.Key(c.cellNum) == r.ID {
		return errors.Wrapf(ErrDuplicateKey, "key %d", r.ID)
	}
	return c.Insert(r.ID, r)
}

// ExecuteSelect writes every row to w in ascending key order, one per line.
func (t *Table) ExecuteSelect(w io.Writer) error {
	c, err := tableStart(t)
	if err != nil {
		return err
	}
	for !c.endOfTable {
		r, err := c.Row()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, r)
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// PrintTree writes a diagnostic pre-order dump of the whole tree to w.
func (t *Table) PrintTree(w io.Writer) error {
	fmt.Fprintln(w, "Tree:")
	return t.printTree(w, t.rootPageNum, 0)
}
