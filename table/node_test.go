package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dblite/pager"
)

func TestLayoutConstants(t *testing.T) {
	require.Equal(t, 291, RowSize)
	require.Equal(t, 6, CommonNodeHeaderSize)
	require.Equal(t, 14, LeafNodeHeaderSize)
	require.Equal(t, 295, LeafNodeCellSize)
	require.Equal(t, 13, LeafNodeMaxCells)
	require.Equal(t, 7, LeafNodeLeftSplitCount)
	require.Equal(t, 7, LeafNodeRightSplitCount)
	require.Equal(t, LeafNodeMaxCells+1, LeafNodeLeftSplitCount+LeafNodeRightSplitCount)
	require.Equal(t, 14, InternalNodeHeaderSize)
	require.Equal(t, 8, InternalNodeCellSize)
}

func TestInitLeafNode(t *testing.T) {
	page := &pager.Page{}
	page.Data[LeafNodeNumCellsOffset] = 0xff // stale bytes from a prior occupant

	l := initLeafNode(page)
	require.Equal(t, NodeLeaf, l.Type())
	require.False(t, l.IsRoot())
	require.Equal(t, uint32(0), l.NumCells())
	require.Equal(t, uint32(0), l.NextLeaf())
}

func TestLeafAccessors(t *testing.T) {
	l := initLeafNode(&pager.Page{})
	l.SetNumCells(2)
	l.SetKey(0, 11)
	l.SetKey(1, 22)
	l.SetNextLeaf(5)

	require.Equal(t, uint32(2), l.NumCells())
	require.Equal(t, uint32(11), l.Key(0))
	require.Equal(t, uint32(22), l.Key(1))
	require.Equal(t, uint32(5), l.NextLeaf())
	require.Equal(t, uint32(22), l.MaxKey())
	require.Len(t, l.Cell(0), LeafNodeCellSize)
	require.Len(t, l.Value(0), RowSize)
}

func TestInternalAccessors(t *testing.T) {
	in := initInternalNode(&pager.Page{})
	require.Equal(t, NodeInternal, in.Type())
	require.Equal(t, uint32(0), in.NumKeys())

	in.SetNumKeys(2)
	in.SetChild(0, 3)
	in.SetKey(0, 10)
	in.SetChild(1, 4)
	in.SetKey(1, 20)
	in.SetRightChild(5)

	require.Equal(t, uint32(3), in.Child(0))
	require.Equal(t, uint32(4), in.Child(1))
	// Child(numKeys) aliases the rightmost child.
	require.Equal(t, uint32(5), in.Child(2))
	require.Equal(t, uint32(10), in.Key(0))
	require.Equal(t, uint32(20), in.Key(1))
	require.Equal(t, uint32(20), in.MaxKey())
}

func TestSetChildAliasesRightChild(t *testing.T) {
	in := initInternalNode(&pager.Page{})
	in.SetNumKeys(1)
	in.SetChild(1, 9)
	require.Equal(t, uint32(9), in.RightChild())
}

func TestSerializeRowZeroFillsSlot(t *testing.T) {
	buf := make([]byte, RowSize)
	for i := range buf {
		buf[i] = 0xff
	}

	SerializeRow(Row{ID: 7, Username: "amy", Email: "amy@x.io"}, buf)

	for i := UsernameOffset + len("amy"); i < EmailOffset; i++ {
		require.Equal(t, byte(0), buf[i], "username padding at %d", i)
	}
	for i := EmailOffset + len("amy@x.io"); i < RowSize; i++ {
		require.Equal(t, byte(0), buf[i], "email padding at %d", i)
	}

	got := DeserializeRow(buf)
	require.Equal(t, Row{ID: 7, Username: "amy", Email: "amy@x.io"}, got)
}

func TestSerializeRowMaxWidthColumns(t *testing.T) {
	username := make([]byte, UsernameSize)
	email := make([]byte, EmailSize)
	for i := range username {
		username[i] = 'u'
	}
	for i := range email {
		email[i] = 'e'
	}

	buf := make([]byte, RowSize)
	r := Row{ID: 1, Username: string(username), Email: string(email)}
	SerializeRow(r, buf)
	require.Equal(t, r, DeserializeRow(buf))
}

func TestRowString(t *testing.T) {
	r := Row{ID: 1, Username: "a", Email: "a@x"}
	require.Equal(t, `1 "a" "a@x"`, r.String())
}
