package core

import (
	"crypto/sha512"

	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

type CompoundIntegrityCheck struct {
	inners []contracts.IntegrityCheck
}

func NewCompoundIntegrityCheck(inners ...contracts.IntegrityCheck) *CompoundIntegrityCheck {
	return &CompoundIntegrityCheck{inners: inners}
}

func (this *CompoundIntegrityCheck) Verify(manifest contracts.Manifest, archive contracts.ArchiveReader) error {
	for _, inner := range this.inners {
		err := inner.Verify(manifest, archive)
		if err != nil {
			return err
		}
	}
	return nil
}

// NewDigestRecomputer checks names, presence, content, and coverage, stopping
// at the first failure.
func NewDigestRecomputer(logger *logging.Logger) *CompoundIntegrityCheck {
	return NewCompoundIntegrityCheck(
		NewMemberNameCheck(),
		NewMemberListingCheck(logger),
		NewMemberContentCheck(sha512.New),
		NewMemberCoverageCheck(),
	)
}
