package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zip"

	"github.com/tinkwell/twless/contracts"
)

var zipSignature = []byte("PK\x03\x04")

type ZipArchiveReader struct {
	inner   *zip.Reader
	closer  io.Closer
	members map[string]*zip.File
	names   []string
}

func NewZipArchiveReader(reader io.ReaderAt, size int64) (*ZipArchiveReader, error) {
	inner, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, err
	}
	this := &ZipArchiveReader{inner: inner, members: make(map[string]*zip.File)}
	for _, file := range inner.File {
		if _, found := this.members[file.Name]; found {
			return nil, contracts.NewMemberError(file.Name, errDuplicateMember)
		}
		this.members[file.Name] = file
		this.names = append(this.names, file.Name)
	}
	return this, nil
}

func NewZipArchiveReaderFromBytes(raw []byte) (*ZipArchiveReader, error) {
	return NewZipArchiveReader(bytes.NewReader(raw), int64(len(raw)))
}

func (this *ZipArchiveReader) Members() []string {
	return append([]string(nil), this.names...)
}

func (this *ZipArchiveReader) OpenMember(name string) (io.ReadCloser, error) {
	file, found := this.members[name]
	if !found {
		return nil, contracts.NewMemberError(name, contracts.MissingMemberErr)
	}
	return file.Open()
}

func (this *ZipArchiveReader) Close() error {
	if this.closer == nil {
		return nil
	}
	return this.closer.Close()
}

////////////////////////////////////////

type ZipArchiveOpener struct{}

func NewZipArchiveOpener() *ZipArchiveOpener {
	return &ZipArchiveOpener{}
}

func (this *ZipArchiveOpener) Open(path string) (contracts.ArchiveReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := this.open(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return reader, nil
}

func (this *ZipArchiveOpener) open(file *os.File) (*ZipArchiveReader, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if !HasZipSignature(file) {
		return nil, errNotZip
	}
	reader, err := NewZipArchiveReader(file, info.Size())
	if err != nil {
		return nil, err
	}
	reader.closer = file
	return reader, nil
}

func HasZipSignature(reader io.ReaderAt) bool {
	header := make([]byte, len(zipSignature))
	_, err := reader.ReadAt(header, 0)
	return err == nil && bytes.Equal(header, zipSignature)
}

var (
	errNotZip          = errors.New("not a zip archive")
	errDuplicateMember = errors.New("archive lists the same member more than once")
)
