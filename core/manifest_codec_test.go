package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/tinkwell/twless/contracts"
)

func TestManifestCodecFixture(t *testing.T) {
	gunit.Run(new(ManifestCodecFixture), t)
}

type ManifestCodecFixture struct {
	*gunit.Fixture
	digestA string
	digestB string
}

func (this *ManifestCodecFixture) Setup() {
	this.digestA = DigestBytes([]byte("a"))
	this.digestB = DigestBytes([]byte("b"))
}

func (this *ManifestCodecFixture) TestEncodedLinesFollowInsertionOrder() {
	manifest := contracts.Manifest{Entries: []contracts.ManifestEntry{
		{Name: "firmware.json", Algorithm: "SHA512", Digest: this.digestA},
		{Name: "a.wasm", Algorithm: "SHA512", Digest: this.digestB},
	}}

	encoded := string(EncodeManifest(manifest))

	this.So(encoded, should.Equal,
		`"firmware.json" SHA512 `+this.digestA+"\n"+
			`"a.wasm" SHA512 `+this.digestB)
}

func (this *ManifestCodecFixture) TestDecodeRestoresEncodedManifest() {
	manifest := contracts.Manifest{Entries: []contracts.ManifestEntry{
		{Name: "b.wasm", Algorithm: "SHA512", Digest: this.digestB},
		{Name: "a.wasm", Algorithm: "SHA512", Digest: this.digestA},
	}}

	decoded, err := DecodeManifest(EncodeManifest(manifest))

	this.So(err, should.BeNil)
	this.So(decoded, should.Resemble, manifest)
}

func (this *ManifestCodecFixture) TestCarriageReturnsAndTrailingNewlineTolerated() {
	raw := `"a.wasm" SHA512 ` + this.digestA + "\r\n" + `"b.wasm" SHA512 ` + this.digestB + "\r\n"

	decoded, err := DecodeManifest([]byte(raw))

	this.So(err, should.BeNil)
	this.So(decoded.Names(), should.Resemble, []string{"a.wasm", "b.wasm"})
	this.So(decoded.Entries[1].Digest, should.Equal, this.digestB)
}

func (this *ManifestCodecFixture) TestUppercaseDigestAccepted() {
	raw := `"a.wasm" SHA512 ` + strings.ToUpper(this.digestA)

	decoded, err := DecodeManifest([]byte(raw))

	this.So(err, should.BeNil)
	this.So(decoded.Entries[0].Digest, should.Equal, strings.ToUpper(this.digestA))
}

func (this *ManifestCodecFixture) TestTwoFieldsRejected() {
	this.assertMalformed(`"a.wasm" ` + this.digestA)
}

func (this *ManifestCodecFixture) TestFourFieldsRejected() {
	this.assertMalformed(`"a.wasm" SHA512 ` + this.digestA + " extra")
}

func (this *ManifestCodecFixture) TestWhitespaceInQuotedNameRejected() {
	this.assertMalformed(`"a b.wasm" SHA512 ` + this.digestA)
	this.assertMalformed("\"a\tb.wasm\" SHA512 " + this.digestA)
	this.assertMalformed(`" a.wasm" SHA512 ` + this.digestA)
}

func (this *ManifestCodecFixture) TestUnknownAlgorithmRejected() {
	this.assertMalformed(`"a.wasm" SHA256 ` + this.digestA)
}

func (this *ManifestCodecFixture) TestLowercaseAlgorithmTagRejected() {
	this.assertMalformed(`"a.wasm" sha512 ` + this.digestA)
}

func (this *ManifestCodecFixture) TestUnquotedNameRejected() {
	this.assertMalformed(`a.wasm SHA512 ` + this.digestA)
}

func (this *ManifestCodecFixture) TestShortDigestRejected() {
	this.assertMalformed(`"a.wasm" SHA512 abcdef`)
}

func (this *ManifestCodecFixture) TestNonHexDigestRejected() {
	this.assertMalformed(`"a.wasm" SHA512 ` + strings.Repeat("z", 128))
}

func (this *ManifestCodecFixture) TestEmptyManifestRejected() {
	this.assertMalformed("\n\n")
}

func (this *ManifestCodecFixture) TestOneBadLineRejectsWholeManifest() {
	raw := `"a.wasm" SHA512 ` + this.digestA + "\n" + `"b.wasm" MD5 ` + this.digestB

	decoded, err := DecodeManifest([]byte(raw))

	this.So(errors.Is(err, contracts.MalformedManifestErr), should.BeTrue)
	this.So(err.Error(), should.ContainSubstring, "line 2")
	this.So(decoded.Entries, should.BeEmpty)
}

func (this *ManifestCodecFixture) assertMalformed(raw string) {
	_, err := DecodeManifest([]byte(raw))
	this.So(errors.Is(err, contracts.MalformedManifestErr), should.BeTrue)
}
