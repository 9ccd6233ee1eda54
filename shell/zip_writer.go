package shell

import (
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"github.com/tinkwell/twless/contracts"
)

type ZipArchiveWriter struct {
	inner   *zip.Writer
	current io.Writer
	once    sync.Once
}

func NewZipArchiveWriter(writer io.Writer, level int) *ZipArchiveWriter {
	inner := zip.NewWriter(writer)
	inner.RegisterCompressor(zip.Deflate, func(target io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(target, level)
	})
	return &ZipArchiveWriter{inner: inner}
}

func NewDeflateArchiveWriter(writer io.Writer) contracts.ArchiveWriter {
	return NewZipArchiveWriter(writer, flate.DefaultCompression)
}

func (this *ZipArchiveWriter) WriteHeader(header contracts.ArchiveHeader) (err error) {
	this.current, err = this.inner.CreateHeader(&zip.FileHeader{
		Name:               header.Name,
		Modified:           header.ModTime,
		UncompressedSize64: uint64(header.Size),
		Method:             zip.Deflate,
	})
	return err
}

func (this *ZipArchiveWriter) Write(buffer []byte) (int, error) {
	if this.current == nil {
		return 0, errNoCurrentMember
	}
	return this.current.Write(buffer)
}

func (this *ZipArchiveWriter) Close() (err error) {
	this.current = nil
	this.once.Do(func() { err = this.inner.Close() })
	return err
}

var errNoCurrentMember = errors.New("archive member header must be written first")
