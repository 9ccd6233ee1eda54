package core

import (
	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

type MemberListingCheck struct {
	logger *logging.Logger
}

func NewMemberListingCheck(logger *logging.Logger) *MemberListingCheck {
	return &MemberListingCheck{logger: logger}
}

func (this *MemberListingCheck) Verify(manifest contracts.Manifest, archive contracts.ArchiveReader) error {
	present := make(map[string]struct{})
	for _, name := range archive.Members() {
		present[name] = struct{}{}
	}
	for _, entry := range manifest.Entries {
		if _, found := present[entry.Name]; !found {
			return contracts.NewMemberError(entry.Name, contracts.MissingMemberErr)
		}
	}
	this.logger.Printf("[INFO] Listing check passed for %d manifest entries.", len(manifest.Entries))
	return nil
}
