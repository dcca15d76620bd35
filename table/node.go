package table

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"

	"dblite/pager"
)

type NodeType uint8

const (
	NodeInternal NodeType = iota
	NodeLeaf
)

// node is a typed view over a raw page buffer exposing the common header.
// All field access goes through fixed offsets; the buffer is the on-disk
// representation.
type node struct {
	page *pager.Page
}

func (n node) Type() NodeType {
	return NodeType(n.page.Data[NodeTypeOffset])
}

func (n node) setType(t NodeType) {
	n.page.Data[NodeTypeOffset] = byte(t)
}

func (n node) IsRoot() bool {
	return n.page.Data[IsRootOffset] == 1
}

func (n node) SetRoot(isRoot bool) {
	if isRoot {
		n.page.Data[IsRootOffset] = 1
	} else {
		n.page.Data[IsRootOffset] = 0
	}
}

// MaxKey returns the key of the last cell for a leaf, or the last separator
// for an internal node.
func (n node) MaxKey() uint32 {
	switch n.Type() {
	case NodeLeaf:
		l := leafNode{n}
		return l.Key(l.NumCells() - 1)
	default:
		in := internalNode{n}
		return in.Key(in.NumKeys() - 1)
	}
}

func (n node) getUint32(offset int) uint32 {
	return binary.LittleEndian.Uint32(n.page.Data[offset : offset+4])
}

func (n node) putUint32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(n.page.Data[offset:offset+4], v)
}

// leafNode views a page as a leaf: cells are (key, row) pairs packed after
// the leaf header.
type leafNode struct {
	node
}

func leaf(p *pager.Page) leafNode { return leafNode{node{p}} }

// initLeafNode resets the buffer's header to an empty non-root leaf.
func initLeafNode(p *pager.Page) leafNode {
	l := leaf(p)
	l.setType(NodeLeaf)
	l.SetRoot(false)
	l.SetNumCells(0)
	l.SetNextLeaf(0)
	return l
}

func (l leafNode) NumCells() uint32 { return l.getUint32(LeafNodeNumCellsOffset) }
func (l leafNode) SetNumCells(n uint32) { l.putUint32(LeafNodeNumCellsOffset, n) }

func (l leafNode) NextLeaf() uint32 { return l.getUint32(LeafNodeNextLeafOffset) }
func (l leafNode) SetNextLeaf(pageNum uint32) { l.putUint32(LeafNodeNextLeafOffset, pageNum) }

// Cell returns the full key+value slot for cellNum.
func (l leafNode) Cell(cellNum uint32) []byte {
	offset := LeafNodeHeaderSize + cellNum*LeafNodeCellSize
	return l.page.Data[offset : offset+LeafNodeCellSize]
}

func (l leafNode) Key(cellNum uint32) uint32 {
	return binary.LittleEndian.Uint32(l.Cell(cellNum)[LeafNodeKeyOffset:])
}

func (l leafNode) SetKey(cellNum uint32, key uint32) {
	binary.LittleEndian.PutUint32(l.Cell(cellNum)[LeafNodeKeyOffset:], key)
}

// Value returns the row bytes of the cell.
func (l leafNode) Value(cellNum uint32) []byte {
	return l.Cell(cellNum)[LeafNodeValueOffset : LeafNodeValueOffset+LeafNodeValueSize]
}

// internalNode views a page as an internal node: cells are
// (child page, separator key) pairs, plus a rightmost child pointer in the
// header.
type internalNode struct {
	node
}

func internal(p *pager.Page) internalNode { return internalNode{node{p}} }

// initInternalNode resets the buffer's header to an empty non-root
// internal node.
func initInternalNode(p *pager.Page) internalNode {
	in := internal(p)
	in.setType(NodeInternal)
	in.SetRoot(false)
	in.SetNumKeys(0)
	return in
}

func (in internalNode) NumKeys() uint32 { return in.getUint32(InternalNodeNumKeysOffset) }
func (in internalNode) SetNumKeys(n uint32) { in.putUint32(InternalNodeNumKeysOffset, n) }

func (in internalNode) RightChild() uint32 { return in.getUint32(InternalNodeRightChildOffset) }
func (in internalNode) SetRightChild(pageNum uint32) {
	in.putUint32(InternalNodeRightChildOffset, pageNum)
}

func (in internalNode) cellOffset(cellNum uint32) int {
	return InternalNodeHeaderSize + int(cellNum)*InternalNodeCellSize
}

// Child returns the page number of child childNum, where Child(NumKeys())
// aliases the rightmost child. Anything past that is a programmer error.
func (in internalNode) Child(childNum uint32) uint32 {
	numKeys := in.NumKeys()
	if childNum > numKeys {
		log.Fatalf("Tried to access child_num %d > num_keys %d", childNum, numKeys)
	}
	if childNum == numKeys {
		return in.RightChild()
	}
	return in.getUint32(in.cellOffset(childNum))
}

func (in internalNode) SetChild(childNum uint32, pageNum uint32) {
	numKeys := in.NumKeys()
	if childNum > numKeys {
		log.Fatalf("Tried to access child_num %d > num_keys %d", childNum, numKeys)
	}
	if childNum == numKeys {
		in.SetRightChild(pageNum)
		return
	}
	in.putUint32(in.cellOffset(childNum), pageNum)
}

func (in internalNode) Key(keyNum uint32) uint32 {
	return in.getUint32(in.cellOffset(keyNum) + InternalNodeChildSize)
}

func (in internalNode) SetKey(keyNum uint32, key uint32) {
	in.putUint32(in.cellOffset(keyNum)+InternalNodeChildSize, key)
}
