package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/tinkwell/twless/contracts"
)

type ExtractedManifest struct {
	Manifest     contracts.Manifest
	Raw          []byte
	Signature    []byte
	HasSignature bool
}

// Signed reports whether the archive carries a signature member, even an
// empty one.
func (this ExtractedManifest) Signed() bool {
	return this.HasSignature
}

// ExtractManifest reads and decodes the manifest and the optional signature.
// Raw holds the manifest bytes exactly as stored.
func ExtractManifest(archive contracts.ArchiveReader) (extracted ExtractedManifest, err error) {
	extracted.Raw, err = readMember(archive, contracts.ManifestMemberName)
	if errors.Is(err, contracts.MissingMemberErr) {
		return ExtractedManifest{}, contracts.MissingManifestErr
	}
	if err != nil {
		return ExtractedManifest{}, err
	}

	extracted.Manifest, err = DecodeManifest(extracted.Raw)
	if err != nil {
		return ExtractedManifest{}, err
	}

	extracted.Signature, err = readMember(archive, contracts.ManifestSignatureMemberName)
	if errors.Is(err, contracts.MissingMemberErr) {
		return extracted, nil
	}
	if err != nil {
		return ExtractedManifest{}, err
	}
	extracted.HasSignature = true
	return extracted, nil
}

func readMember(archive contracts.ArchiveReader, name string) ([]byte, error) {
	member, err := archive.OpenMember(name)
	if errors.Is(err, contracts.MissingMemberErr) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.ArchiveUnreadableErr, err)
	}
	defer func() { _ = member.Close() }()

	raw, err := io.ReadAll(member)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.ArchiveUnreadableErr, contracts.NewMemberError(name, err))
	}
	return raw, nil
}
