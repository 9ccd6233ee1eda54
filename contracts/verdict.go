package contracts

type VerificationStage int

const (
	StageStart VerificationStage = iota
	StageManifestLoaded
	StageDigestsVerified
	StageSignatureVerified
	StageValid
)

func (this VerificationStage) String() string {
	switch this {
	case StageStart:
		return "start"
	case StageManifestLoaded:
		return "manifest-loaded"
	case StageDigestsVerified:
		return "digests-verified"
	case StageSignatureVerified:
		return "signature-verified"
	case StageValid:
		return "valid"
	default:
		return "unknown"
	}
}

type VerdictStatus int

const (
	Invalid VerdictStatus = iota
	Valid
	ValidUnsigned
)

func (this VerdictStatus) String() string {
	switch this {
	case Valid:
		return "valid"
	case ValidUnsigned:
		return "valid (unsigned)"
	default:
		return "not valid"
	}
}

type UnsignedPolicy int

const (
	RejectUnsigned UnsignedPolicy = iota
	AcceptUnsigned
)

// Verdict is the outcome of one verification run. Stage is the last stage
// that completed; Reason is set only when Status is Invalid.
type Verdict struct {
	Status  VerdictStatus
	Stage   VerificationStage
	Reason  error
	Entries []ManifestEntry
	Signed  bool
}

func (this Verdict) Trusted() bool {
	return this.Status == Valid
}

func (this Verdict) Accepted() bool {
	return this.Status != Invalid
}

func (this Verdict) String() string {
	if this.Reason == nil {
		return this.Status.String()
	}
	return this.Status.String() + ": " + this.Reason.Error()
}
