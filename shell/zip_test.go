package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/tinkwell/twless/contracts"
)

func TestZipArchiveFixture(t *testing.T) {
	gunit.Run(new(ZipArchiveFixture), t)
}

type ZipArchiveFixture struct {
	*gunit.Fixture
	directory string
	modified  time.Time
}

func (this *ZipArchiveFixture) Setup() {
	var err error
	this.directory, err = os.MkdirTemp("", "twless-zip-")
	this.So(err, should.BeNil)
	this.modified = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
}

func (this *ZipArchiveFixture) Teardown() {
	_ = os.RemoveAll(this.directory)
}

func (this *ZipArchiveFixture) TestMembersRoundTripInOrder() {
	raw := this.archive(map[int][2]string{
		0: {"firmware.json", "{}"},
		1: {"a.wasm", "\x01\x02"},
		2: {"integrity/manifest.txt", "manifest"},
	})

	reader, err := NewZipArchiveReaderFromBytes(raw)

	this.So(err, should.BeNil)
	this.So(reader.Members(), should.Resemble, []string{"firmware.json", "a.wasm", "integrity/manifest.txt"})
	this.So(this.read(reader, "a.wasm"), should.Equal, "\x01\x02")
	this.So(this.read(reader, "integrity/manifest.txt"), should.Equal, "manifest")
}

func (this *ZipArchiveFixture) TestMissingMemberIsReported() {
	reader, _ := NewZipArchiveReaderFromBytes(this.archive(map[int][2]string{0: {"a.wasm", "x"}}))

	_, err := reader.OpenMember("b.wasm")

	name, _ := contracts.FailedMember(err)
	this.So(errors.Is(err, contracts.MissingMemberErr), should.BeTrue)
	this.So(name, should.Equal, "b.wasm")
}

func (this *ZipArchiveFixture) TestMembersAreDeflated() {
	raw := this.archive(map[int][2]string{0: {"big.wasm", string(bytes.Repeat([]byte("A"), 64*1024))}})

	this.So(len(raw), should.BeLessThan, 4*1024)
}

func (this *ZipArchiveFixture) TestWriteWithoutHeaderFails() {
	writer := NewZipArchiveWriter(new(bytes.Buffer), 5)

	_, err := writer.Write([]byte("orphan"))

	this.So(err, should.NotBeNil)
	this.So(writer.Close(), should.BeNil)
	this.So(writer.Close(), should.BeNil)
}

func (this *ZipArchiveFixture) TestOpenerReadsArchiveFromDisk() {
	path := filepath.Join(this.directory, "firmware.zip")
	_ = os.WriteFile(path, this.archive(map[int][2]string{0: {"a.wasm", "x"}}), 0644)

	reader, err := NewZipArchiveOpener().Open(path)

	this.So(err, should.BeNil)
	this.So(reader.Members(), should.Resemble, []string{"a.wasm"})
	this.So(reader.Close(), should.BeNil)
}

func (this *ZipArchiveFixture) TestOpenerRejectsOtherFiles() {
	path := filepath.Join(this.directory, "firmware.zip")
	_ = os.WriteFile(path, []byte("this is not an archive"), 0644)

	reader, err := NewZipArchiveOpener().Open(path)

	this.So(reader, should.BeNil)
	this.So(err, should.NotBeNil)
}

func (this *ZipArchiveFixture) TestOpenerRejectsTruncatedArchive() {
	raw := this.archive(map[int][2]string{0: {"a.wasm", "x"}})
	path := filepath.Join(this.directory, "firmware.zip")
	_ = os.WriteFile(path, raw[:len(raw)/2], 0644)

	_, err := NewZipArchiveOpener().Open(path)

	this.So(err, should.NotBeNil)
}

func (this *ZipArchiveFixture) TestOpenerReportsMissingFile() {
	_, err := NewZipArchiveOpener().Open(filepath.Join(this.directory, "missing.zip"))

	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *ZipArchiveFixture) archive(members map[int][2]string) []byte {
	buffer := new(bytes.Buffer)
	writer := NewDeflateArchiveWriter(buffer)
	for i := 0; i < len(members); i++ {
		member := members[i]
		err := writer.WriteHeader(contracts.ArchiveHeader{Name: member[0], Size: int64(len(member[1])), ModTime: this.modified})
		this.So(err, should.BeNil)
		_, err = writer.Write([]byte(member[1]))
		this.So(err, should.BeNil)
	}
	this.So(writer.Close(), should.BeNil)
	return buffer.Bytes()
}

func (this *ZipArchiveFixture) read(reader contracts.ArchiveReader, name string) string {
	member, err := reader.OpenMember(name)
	this.So(err, should.BeNil)
	defer func() { _ = member.Close() }()
	raw, err := io.ReadAll(member)
	this.So(err, should.BeNil)
	return string(raw)
}
