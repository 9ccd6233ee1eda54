package contracts

import (
	"io"
	"time"
)

type ArchiveHeader struct {
	Name    string
	Size    int64
	ModTime time.Time
}

type ArchiveWriter interface {
	io.WriteCloser
	WriteHeader(header ArchiveHeader) error
}

type ArchiveReader interface {
	io.Closer
	Members() []string
	OpenMember(name string) (io.ReadCloser, error)
}

type ArchiveOpener interface {
	Open(path string) (ArchiveReader, error)
}
