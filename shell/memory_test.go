package shell

import (
	"errors"
	"os"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestMemoryFixture(t *testing.T) {
	gunit.Run(new(MemoryFixture), t)
}

type MemoryFixture struct {
	*gunit.Fixture
	fileSystem *InMemoryFileSystem
}

func (this *MemoryFixture) Setup() {
	this.fileSystem = NewInMemoryFileSystem()
}

func (this *MemoryFixture) TestWriteFileReadFile() {
	this.So(this.fileSystem.WriteFile("/file.txt", []byte("Hello World")), should.BeNil)

	content, err := this.fileSystem.ReadFile("/file.txt")

	this.So(err, should.BeNil)
	this.So(content, should.Resemble, []byte("Hello World"))
	this.So(this.fileSystem.Paths(), should.Resemble, []string{"/file.txt"})
}

func (this *MemoryFixture) TestReadMissingFile() {
	_, err := this.fileSystem.ReadFile("/missing.txt")

	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestStoredContentIsCopied() {
	content := []byte("abc")
	_ = this.fileSystem.WriteFile("/file.txt", content)
	content[0] = 'X'

	stored, _ := this.fileSystem.ReadFile("/file.txt")

	this.So(stored, should.Resemble, []byte("abc"))
}

func (this *MemoryFixture) TestInjectedFailures() {
	failure := errors.New("disk full")
	this.fileSystem.FailWrite("/out.zip", failure)
	this.fileSystem.FailRead("/in.wasm", failure)

	this.So(this.fileSystem.WriteFile("/out.zip", nil), should.Equal, failure)
	_, err := this.fileSystem.ReadFile("/in.wasm")
	this.So(err, should.Equal, failure)
	this.So(this.fileSystem.Exists("/out.zip"), should.BeFalse)
}
