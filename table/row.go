package table

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Row is the logical record stored in a leaf cell.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

func (r Row) String() string {
	return fmt.Sprintf("%d %q %q", r.ID, r.Username, r.Email)
}

// SerializeRow writes the row into dst, which must be RowSize bytes. The
// destination is zeroed first so no stale bytes remain from a prior
// occupant of the slot.
func SerializeRow(r Row, dst []byte) {
	for i := range dst[:RowSize] {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], r.ID)
	copy(dst[UsernameOffset:UsernameOffset+UsernameSize], r.Username)
	copy(dst[EmailOffset:EmailOffset+EmailSize], r.Email)
}

// DeserializeRow reads a row back out of src, stripping the zero padding
// from the text columns.
func DeserializeRow(src []byte) Row {
	return Row{
		ID:       binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize]),
		Username: strings.TrimRight(string(src[UsernameOffset:UsernameOffset+UsernameSize]), "\x00"),
		Email:    strings.TrimRight(string(src[EmailOffset:EmailOffset+EmailSize]), "\x00"),
	}
}
