package core

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/tinkwell/twless/contracts"
	"github.com/tinkwell/twless/shell"
)

type ArchiveItem struct {
	contracts.ArchiveHeader
	contents []byte
}

type FakeArchiveWriter struct {
	items       []*ArchiveItem
	current     *ArchiveItem
	closed      bool
	headerError error
	writeError  error
	closedError error
}

func NewFakeArchiveWriter() *FakeArchiveWriter { return &FakeArchiveWriter{} }

func (this *FakeArchiveWriter) Factory(io.Writer) contracts.ArchiveWriter { return this }

func (this *FakeArchiveWriter) WriteHeader(header contracts.ArchiveHeader) error {
	if this.closed {
		return errors.New("closed")
	}
	this.current = &ArchiveItem{ArchiveHeader: header}
	this.items = append(this.items, this.current)
	return this.headerError
}
func (this *FakeArchiveWriter) Write(p []byte) (int, error) {
	this.current.contents = append(this.current.contents, p...)
	return len(p), this.writeError
}
func (this *FakeArchiveWriter) Close() error {
	this.closed = true
	return this.closedError
}

///////////////////////////////////////////////////////////////

type FakeArchiveReader struct {
	names     []string
	members   map[string][]byte
	opened    []string
	openError map[string]error
	readError map[string]error
	closed    bool
}

func NewFakeArchiveReader() *FakeArchiveReader {
	return &FakeArchiveReader{
		members:   make(map[string][]byte),
		openError: make(map[string]error),
		readError: make(map[string]error),
	}
}

func (this *FakeArchiveReader) Put(name string, content []byte) *FakeArchiveReader {
	if _, found := this.members[name]; !found {
		this.names = append(this.names, name)
	}
	this.members[name] = content
	return this
}

func (this *FakeArchiveReader) Remove(name string) {
	delete(this.members, name)
	var names []string
	for _, existing := range this.names {
		if existing != name {
			names = append(names, existing)
		}
	}
	this.names = names
}

func (this *FakeArchiveReader) Members() []string { return this.names }

func (this *FakeArchiveReader) OpenMember(name string) (io.ReadCloser, error) {
	this.opened = append(this.opened, name)
	if err := this.openError[name]; err != nil {
		return nil, err
	}
	content, found := this.members[name]
	if !found {
		return nil, contracts.NewMemberError(name, contracts.MissingMemberErr)
	}
	var reader io.Reader = bytes.NewReader(content)
	if err := this.readError[name]; err != nil {
		reader = io.MultiReader(reader, &failingReader{err: err})
	}
	return io.NopCloser(reader), nil
}

func (this *FakeArchiveReader) Close() error {
	this.closed = true
	return nil
}

type failingReader struct{ err error }

func (this *failingReader) Read([]byte) (int, error) { return 0, this.err }

///////////////////////////////////////////////////////////////

type FakeArchiveOpener struct {
	archive *FakeArchiveReader
	err     error
	paths   []string
}

func (this *FakeArchiveOpener) Open(path string) (contracts.ArchiveReader, error) {
	this.paths = append(this.paths, path)
	if this.err != nil {
		return nil, this.err
	}
	return this.archive, nil
}

///////////////////////////////////////////////////////////////

type FakeKeyLocator struct {
	keys     map[string][]byte
	err      error
	requests []string
}

func NewFakeKeyLocator() *FakeKeyLocator {
	return &FakeKeyLocator{keys: make(map[string][]byte)}
}

func (this *FakeKeyLocator) Locate(path, suffix string) ([]byte, error) {
	this.requests = append(this.requests, path+"#"+suffix)
	if this.err != nil {
		return nil, this.err
	}
	key, found := this.keys[path+"#"+suffix]
	if !found {
		return nil, contracts.KeySourceNotFoundErr
	}
	return key, nil
}

///////////////////////////////////////////////////////////////

type FakeIdentitySource struct {
	identity []byte
	err      error
	hosts    []string
}

func (this *FakeIdentitySource) FetchIdentity(_ context.Context, host string) ([]byte, error) {
	this.hosts = append(this.hosts, host)
	return this.identity, this.err
}

var (
	writeErr = errors.New("write error")
	closeErr = errors.New("close error")
	readErr  = errors.New("read error")
)

///////////////////////////////////////////////////////////////

// StoredArchiveOpener opens zip archives previously written to storage.
type StoredArchiveOpener struct {
	storage contracts.FileReader
}

func (this *StoredArchiveOpener) Open(path string) (contracts.ArchiveReader, error) {
	raw, err := this.storage.ReadFile(path)
	if err != nil {
		return nil, err
	}
	archive, err := shell.NewZipArchiveReaderFromBytes(raw)
	if err != nil {
		return nil, err
	}
	return archive, nil
}
