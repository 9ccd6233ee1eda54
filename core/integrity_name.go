package core

import (
	"strings"

	"github.com/tinkwell/twless/contracts"
)

// MemberNameCheck refuses manifest entries that could address a location
// outside the archive root once extracted.
type MemberNameCheck struct{}

func NewMemberNameCheck() *MemberNameCheck {
	return &MemberNameCheck{}
}

func (this *MemberNameCheck) Verify(manifest contracts.Manifest, _ contracts.ArchiveReader) error {
	for _, entry := range manifest.Entries {
		if !IsSafeMemberName(entry.Name) {
			return contracts.NewMemberError(entry.Name, contracts.UnsafeMemberNameErr)
		}
	}
	return nil
}

func IsSafeMemberName(name string) bool {
	return strings.TrimSpace(name) != "" &&
		!strings.HasPrefix(name, "/") &&
		!strings.Contains(name, "../")
}
