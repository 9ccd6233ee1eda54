package core

import (
	"errors"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

func TestMemberListingCheckFixture(t *testing.T) {
	gunit.Run(new(MemberListingCheckFixture), t)
}

type MemberListingCheckFixture struct {
	*gunit.Fixture

	checker  *MemberListingCheck
	archive  *FakeArchiveReader
	manifest contracts.Manifest
}

func (this *MemberListingCheckFixture) Setup() {
	this.checker = NewMemberListingCheck(logging.Capture())
	this.archive = NewFakeArchiveReader().
		Put("firmware.json", []byte("firmware.json")).
		Put("a.wasm", []byte("a.wasm")).
		Put("b.wasm", []byte("b.wasm"))
	this.manifest = manifestOf("firmware.json", "a.wasm", "b.wasm")
}

func (this *MemberListingCheckFixture) TestAllMembersPresent() {
	this.So(this.checker.Verify(this.manifest, this.archive), should.BeNil)
}

func (this *MemberListingCheckFixture) TestManifestMemberNotInArchive() {
	this.archive.Remove("b.wasm")

	err := this.checker.Verify(this.manifest, this.archive)

	name, _ := contracts.FailedMember(err)
	this.So(errors.Is(err, contracts.MissingMemberErr), should.BeTrue)
	this.So(name, should.Equal, "b.wasm")
}

func (this *MemberListingCheckFixture) TestNoContentIsRead() {
	_ = this.checker.Verify(this.manifest, this.archive)

	this.So(this.archive.opened, should.BeEmpty)
}
