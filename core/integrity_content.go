package core

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/tinkwell/twless/contracts"
)

type MemberContentCheck struct {
	hasher func() hash.Hash
}

func NewMemberContentCheck(hasher func() hash.Hash) *MemberContentCheck {
	return &MemberContentCheck{hasher: hasher}
}

func (this *MemberContentCheck) Verify(manifest contracts.Manifest, archive contracts.ArchiveReader) error {
	for _, entry := range manifest.Entries {
		actual, err := this.digest(archive, entry.Name)
		if err != nil {
			return err
		}
		if !strings.EqualFold(actual, entry.Digest) {
			return contracts.NewMemberError(entry.Name, contracts.DigestMismatchErr)
		}
	}
	return nil
}

func (this *MemberContentCheck) digest(archive contracts.ArchiveReader, name string) (string, error) {
	member, err := archive.OpenMember(name)
	if errors.Is(err, contracts.MissingMemberErr) {
		return "", contracts.NewMemberError(name, contracts.MissingMemberErr)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", contracts.ArchiveUnreadableErr, err)
	}
	defer func() { _ = member.Close() }()

	reader := NewHashReader(member, this.hasher())
	if _, err = io.Copy(io.Discard, reader); err != nil {
		return "", fmt.Errorf("%w: %w", contracts.ArchiveUnreadableErr, contracts.NewMemberError(name, err))
	}
	return reader.HexDigest(), nil
}
