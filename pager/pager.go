package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed size of every on-disk and in-memory page.
	PageSize = 4096
	// TableMaxPages bounds the page cache. There is no eviction; a working
	// set beyond this many pages is a capacity error.
	TableMaxPages = 100
)

var (
	// ErrTableFull is returned when a page number at or beyond
	// TableMaxPages is requested.
	ErrTableFull = errors.New("table full: all pages in use")
	// ErrCorruptFile is returned when the database file length is not a
	// whole number of pages.
	ErrCorruptFile = errors.New("db file is not a whole number of pages")
)

// Page is one fixed-size buffer in the cache. Pages are handed out by
// reference and remain valid for the duration of a logical operation.
type Page struct {
	Data [PageSize]byte
}

// Pager owns the database file and an array of cached page buffers indexed
// by page number. Pages load on demand; every cached page is written back
// on Close.
type Pager struct {
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      [TableMaxPages]*Page
}

// Open opens (creating if absent) the database file read-write. The file
// length must be a whole number of pages.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if fi.Size()%PageSize != 0 {
		f.Close()
		return nil, errors.Wrapf(ErrCorruptFile, "length %d", fi.Size())
	}
	return &Pager{
		file:       f,
		fileLength: fi.Size(),
		numPages:   uint32(fi.Size() / PageSize),
	}, nil
}

// NumPages reports how many pages the pager currently tracks.
func (p *Pager) NumPages() uint32 { return p.numPages }

// UnusedPageNum returns the number the next allocated page will get.
// Pages are dense; there is no free list.
func (p *Pager) UnusedPageNum() uint32 { return p.numPages }

// GetPage returns the cached buffer for pageNum, loading it from the file
// on a cache miss. A page beyond the end of the file starts zeroed. A page
// number at or beyond TableMaxPages fails with ErrTableFull.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		return nil, errors.Wrapf(ErrTableFull, "page %d out of bounds (max %d)", pageNum, TableMaxPages)
	}
	if p.pages[pageNum] == nil {
		page := &Page{}
		pagesOnDisk := uint32(p.fileLength / PageSize)
		if pageNum < pagesOnDisk {
			if _, err := p.file.Seek(int64(pageNum)*PageSize, io.SeekStart); err != nil {
				return nil, errors.Wrapf(err, "seek page %d", pageNum)
			}
			if _, err := io.ReadFull(p.file, page.Data[:]); err != nil {
				return nil, errors.Wrapf(err, "read page %d", pageNum)
			}
		}
		p.pages[pageNum] = page
	}
	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}
	return p.pages[pageNum], nil
}

// Flush writes the full page back to its slot in the file.
func (p *Pager) Flush(pageNum uint32) error {
	if p.pages[pageNum] == nil {
		return errors.Errorf("flush: page %d is not cached", pageNum)
	}
	if _, err := p.file.Seek(int64(pageNum)*PageSize, io.SeekStart); err != nil {
		return errors.Wrapf(err, "seek page %d", pageNum)
	}
	if _, err := p.file.Write(p.pages[pageNum].Data[:]); err != nil {
		return errors.Wrapf(err, "write page %d", pageNum)
	}
	return nil
}

// Close flushes every cached page and closes the file. Page buffers are
// treated as always dirty; durability is flush-on-close only.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.pages[i] = nil
	}
	if err := p.file.Sync(); err != nil {
		return errors.Wrap(err, "sync")
	}
	return p.file.Close()
}
