package table

import (
	"fmt"
	"io"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// leafNodeFind binary-searches the leaf for key and returns a cursor at its
// position, or at the smallest index holding a greater key (num_cells when
// every key is smaller).
func (t *Table) leafNodeFind(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	l := leaf(page)
	numCells := l.NumCells()
	idx := sort.Search(int(numCells), func(i int) bool {
		return l.Key(uint32(i)) >= key
	})
	return &Cursor{table: t, pageNum: pageNum, cellNum: uint32(idx)}, nil
}

// internalNodeFind descends into the child that may contain key: the first
// child whose separator is >= key, or the rightmost child when every
// separator is smaller.
func (t *Table) internalNodeFind(pageNum uint32, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	in := internal(page)
	numKeys := in.NumKeys()
	idx := sort.Search(int(numKeys), func(i int) bool {
		return in.Key(uint32(i)) >= key
	})
	childPageNum := in.Child(uint32(idx))
	childPage, err := t.pager.GetPage(childPageNum)
	if err != nil {
		return nil, err
	}
	switch (node{childPage}).Type() {
	case NodeLeaf:
		return t.leafNodeFind(childPageNum, key)
	default:
		return t.internalNodeFind(childPageNum, key)
	}
}

// leftmostLeaf descends child 0 from pageNum until a leaf is reached.
func (t *Table) leftmostLeaf(pageNum uint32) (uint32, error) {
	for {
		page, err := t.pager.GetPage(pageNum)
		if err != nil {
			return 0, err
		}
		if (node{page}).Type() == NodeLeaf {
			return pageNum, nil
		}
		pageNum = internal(page).Child(0)
	}
}

// leafNodeInsert writes (key, row) at the cursor's cell, shifting greater
// cells right, or splits when the leaf is full.
func (t *Table) leafNodeInsert(c *Cursor, key uint32, r Row) error {
	page, err := t.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	l := leaf(page)
	numCells := l.NumCells()
	if numCells >= LeafNodeMaxCells {
		return t.leafNodeSplitAndInsert(c, key, r)
	}

	for i := numCells; i > c.cellNum; i-- {
		copy(l.Cell(i), l.Cell(i-1))
	}
	l.SetNumCells(numCells + 1)
	l.SetKey(c.cellNum, key)
	SerializeRow(r, l.Value(c.cellNum))
	return nil
}

// leafNodeSplitAndInsert distributes the LeafNodeMaxCells+1 logical cells
// (existing plus the new one) across the old leaf and a fresh right
// sibling, walking indices high to low so in-place rewrites never clobber
// an uncopied source cell. Only a root split is supported; splitting any
// other leaf is an unimplemented path and terminates the process.
func (t *Table) leafNodeSplitAndInsert(c *Cursor, key uint32, r Row) error {
	oldPage, err := t.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	oldNode := leaf(oldPage)

	newPageNum := t.pager.UnusedPageNum()
	newPage, err := t.pager.GetPage(newPageNum)
	if err != nil {
		return err
	}
	newNode := initLeafNode(newPage)

	// Thread the sibling chain, capturing the old link before it is
	// overwritten so the old right neighbor stays reachable.
	newNode.SetNextLeaf(oldNode.NextLeaf())
	oldNode.SetNextLeaf(newPageNum)

	for i := LeafNodeMaxCells; i >= 0; i-- {
		dest := oldNode
		if i >= LeafNodeLeftSplitCount {
			dest = newNode
		}
		indexWithin := uint32(i % LeafNodeLeftSplitCount)
		switch {
		case uint32(i) == c.cellNum:
			dest.SetKey(indexWithin, key)
			SerializeRow(r, dest.Value(indexWithin))
		case uint32(i) > c.cellNum:
			copy(dest.Cell(indexWithin), oldNode.Cell(uint32(i-1)))
		default:
			copy(dest.Cell(indexWithin), oldNode.Cell(uint32(i)))
		}
	}
	oldNode.SetNumCells(LeafNodeLeftSplitCount)
	newNode.SetNumCells(LeafNodeRightSplitCount)

	if oldNode.IsRoot() {
		return t.createNewRoot(newPageNum)
	}
	log.Fatalf("Need to implement updating parent after split.")
	return nil
}

// createNewRoot handles root promotion: the old root's bytes move to a
// fresh left-child page and the root page is rewritten in place as an
// internal node over the two children. The root page number never changes.
func (t *Table) createNewRoot(rightChildPageNum uint32) error {
	rootPage, err := t.pager.GetPage(t.rootPageNum)
	if err != nil {
		return err
	}
	leftChildPageNum := t.pager.UnusedPageNum()
	leftChildPage, err := t.pager.GetPage(leftChildPageNum)
	if err != nil {
		return err
	}

	copy(leftChildPage.Data[:], rootPage.Data[:])
	(node{leftChildPage}).SetRoot(false)

	root := initInternalNode(rootPage)
	root.SetRoot(true)
	root.SetNumKeys(1)
	root.SetChild(0, leftChildPageNum)
	root.SetKey(0, (node{leftChildPage}).MaxKey())
	root.SetRightChild(rightChildPageNum)
	return nil
}

// printTree emits a pre-order dump of the subtree rooted at pageNum, two
// spaces of indent per level.
func (t *Table) printTree(w io.Writer, pageNum uint32, depth int) error {
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	switch (node{page}).Type() {
	case NodeLeaf:
		l := leaf(page)
		numCells := l.NumCells()
		fmt.Fprintf(w, "%s- leaf (size %d)\n", indent, numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(w, "%s  - %d\n", indent, l.Key(i))
		}
	case NodeInternal:
		in := internal(page)
		numKeys := in.NumKeys()
		fmt.Fprintf(w, "%s- internal (size %d)\n", indent, numKeys)
		for i := uint32(0); i < numKeys; i++ {
			if err := t.printTree(w, in.Child(i), depth+1); err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  - key %d\n", indent, in.Key(i))
		}
		if err := t.printTree(w, in.RightChild(), depth+1); err != nil {
			return err
		}
	}
	return nil
}
