package contracts

import (
	"errors"
	"fmt"
)

var (
	KeyLoadErr                = errors.New("key material could not be loaded")
	SigningErr                = errors.New("manifest could not be signed")
	KeySourceNotFoundErr      = errors.New("no key found in key source")
	MissingManifestErr        = errors.New("archive has no integrity manifest")
	MalformedManifestErr      = errors.New("integrity manifest is malformed")
	MissingMemberErr          = errors.New("manifest member missing from archive")
	DigestMismatchErr         = errors.New("member digest does not match manifest")
	UnsafeMemberNameErr       = errors.New("member name is not safe")
	UncoveredMemberErr        = errors.New("required member not covered by manifest")
	TrustAnchorUnavailableErr = errors.New("trust anchor unavailable")
	SignatureInvalidErr       = errors.New("manifest signature is invalid")
	UnsignedErr               = errors.New("archive is not signed")
	ArchiveUnreadableErr      = errors.New("archive could not be read")
)

// MemberError ties a failure to the archive member that caused it.
type MemberError struct {
	Name string
	Err  error
}

func NewMemberError(name string, err error) *MemberError {
	return &MemberError{Name: name, Err: err}
}

func (this *MemberError) Error() string {
	return fmt.Sprintf("%s: %q", this.Err, this.Name)
}

func (this *MemberError) Unwrap() error {
	return this.Err
}

// FailedMember reports the member name carried by err, if any.
func FailedMember(err error) (string, bool) {
	var member *MemberError
	if errors.As(err, &member) {
		return member.Name, true
	}
	return "", false
}
