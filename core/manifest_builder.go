package core

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tinkwell/twless/contracts"
)

type ManifestBuilder struct {
	entries []contracts.ManifestEntry
	names   map[string]struct{}
}

func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{names: make(map[string]struct{})}
}

func (this *ManifestBuilder) Add(name string, content []byte) error {
	return this.addDigest(name, DigestBytes(content))
}

func (this *ManifestBuilder) addDigest(name, digest string) error {
	if err := validateBaseName(name); err != nil {
		return contracts.NewMemberError(name, fmt.Errorf("%w: %s", contracts.UnsafeMemberNameErr, err))
	}
	if _, found := this.names[name]; found {
		return contracts.NewMemberError(name, errDuplicateMember)
	}
	this.names[name] = struct{}{}
	this.entries = append(this.entries, contracts.ManifestEntry{
		Name:      name,
		Algorithm: contracts.ManifestAlgorithmSHA512,
		Digest:    strings.ToLower(digest),
	})
	return nil
}

func (this *ManifestBuilder) Manifest() contracts.Manifest {
	entries := make([]contracts.ManifestEntry, len(this.entries))
	copy(entries, this.entries)
	return contracts.Manifest{Entries: entries}
}

func (this *ManifestBuilder) Bytes() []byte {
	return EncodeManifest(this.Manifest())
}

type Member struct {
	Name    string
	Content []byte
}

func BuildManifest(members ...Member) (contracts.Manifest, []byte, error) {
	builder := NewManifestBuilder()
	for _, member := range members {
		if err := builder.Add(member.Name, member.Content); err != nil {
			return contracts.Manifest{}, nil, err
		}
	}
	return builder.Manifest(), builder.Bytes(), nil
}

func validateBaseName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errBlankName
	case name == "." || name == "..":
		return errRelativeName
	case strings.ContainsAny(name, `/\`):
		return errPathSeparator
	case strings.ContainsAny(name, "\""):
		return errUnencodableName
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return errWhitespaceName
	}
	return nil
}

var (
	errWhitespaceName  = errors.New("member name must not contain whitespace")
	errDuplicateMember = errors.New("member already listed in manifest")
	errRelativeName    = errors.New("member name must not be a relative directory")
	errPathSeparator   = errors.New("member name must be a base name without path separators")
	errUnencodableName = errors.New("member name must not contain quotes")
)
