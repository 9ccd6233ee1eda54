package core

import (
	"path"
	"strings"

	"github.com/tinkwell/twless/contracts"
)

// MemberCoverageCheck requires the descriptor and every module present in the
// archive to be listed in the manifest.
type MemberCoverageCheck struct{}

func NewMemberCoverageCheck() *MemberCoverageCheck {
	return &MemberCoverageCheck{}
}

func (this *MemberCoverageCheck) Verify(manifest contracts.Manifest, archive contracts.ArchiveReader) error {
	for _, name := range archive.Members() {
		if isRequiredMember(name) && !manifest.Contains(name) {
			return contracts.NewMemberError(name, contracts.UncoveredMemberErr)
		}
	}
	return nil
}

func isRequiredMember(name string) bool {
	return strings.EqualFold(name, contracts.DescriptorMemberName) ||
		strings.EqualFold(path.Ext(name), contracts.ModuleExtension)
}
