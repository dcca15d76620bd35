package table

// Cursor is a position within the tree: a page number, a cell index within
// that page, and an end-of-table flag set one past the last cell.
type Cursor struct {
	table      *Table
	pageNum    uint32
	cellNum    uint32
	endOfTable bool
}

// tableStart positions a cursor at cell 0 of the leftmost leaf. The cursor
// starts at end-of-table iff that leaf is empty.
func tableStart(t *Table) (*Cursor, error) {
	pageNum, err := t.leftmostLeaf(t.rootPageNum)
	if err != nil {
		return nil, err
	}
	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		table:      t,
		pageNum:    pageNum,
		endOfTable: leaf(page).NumCells() == 0,
	}, nil
}

// tableFind positions a cursor at key's cell, or at the position where key
// would be inserted.
func tableFind(t *Table, key uint32) (*Cursor, error) {
	page, err := t.pager.GetPage(t.rootPageNum)
	if err != nil {
		return nil, err
	}
	if (node{page}).Type() == NodeLeaf {
		return t.leafNodeFind(t.rootPageNum, key)
	}
	return t.internalNodeFind(t.rootPageNum, key)
}

// Row reads the row at the cursor.
func (c *Cursor) Row() (Row, error) {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return Row{}, err
	}
	return DeserializeRow(leaf(page).Value(c.cellNum)), nil
}

// Advance moves to the next cell, following the sibling link when the
// current leaf is exhausted.
func (c *Cursor) Advance() error {
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return err
	}
	l := leaf(page)
	c.cellNum++
	if c.cellNum < l.NumCells() {
		return nil
	}
	nextLeaf := l.NextLeaf()
	if nextLeaf == 0 {
		c.endOfTable = true
		return nil
	}
	c.pageNum = nextLeaf
	c.cellNum = 0
	return nil
}

// Insert writes (key, row) at the cursor's position.
func (c *Cursor) Insert(key uint32, r Row) error {
	return c.table.leafNodeInsert(c, key, r)
}
