package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

// Verifier walks an archive through the verification stages. The first
// failing stage ends the run; nothing is retried.
type Verifier struct {
	logger    *logging.Logger
	archives  contracts.ArchiveOpener
	integrity contracts.IntegrityCheck
	anchors   *TrustAnchorResolver
}

func NewVerifier(archives contracts.ArchiveOpener, anchors *TrustAnchorResolver) *Verifier {
	return &Verifier{archives: archives, anchors: anchors}
}

func (this *Verifier) Verify(ctx context.Context, config contracts.VerifyConfig) (verdict contracts.Verdict) {
	verdict.Stage = contracts.StageStart

	archive, err := this.archives.Open(config.ArchivePath)
	if err != nil {
		return this.reject(verdict, fmt.Errorf("%w: %w", contracts.ArchiveUnreadableErr, err))
	}
	defer func() { _ = archive.Close() }()

	extracted, err := ExtractManifest(archive)
	if err != nil {
		return this.reject(verdict, err)
	}
	verdict = this.advance(verdict, contracts.StageManifestLoaded)
	verdict.Signed = extracted.Signed()

	if err = this.digestRecomputer().Verify(extracted.Manifest, archive); err != nil {
		return this.reject(verdict, err)
	}
	verdict = this.advance(verdict, contracts.StageDigestsVerified)
	verdict.Entries = extracted.Manifest.Entries

	if !extracted.Signed() {
		return this.unsigned(verdict, config.UnsignedPolicy)
	}

	verifier, err := this.anchors.Resolve(ctx, config.Anchor)
	if err != nil {
		return this.reject(verdict, err)
	}
	if !verifier.Verify(extracted.Raw, extracted.Signature) {
		return this.reject(verdict, contracts.SignatureInvalidErr)
	}
	verdict = this.advance(verdict, contracts.StageSignatureVerified)

	verdict = this.advance(verdict, contracts.StageValid)
	verdict.Status = contracts.Valid
	return verdict
}

// digestRecomputer shares the verifier's logger unless a check was injected.
func (this *Verifier) digestRecomputer() contracts.IntegrityCheck {
	if this.integrity != nil {
		return this.integrity
	}
	return NewDigestRecomputer(this.logger)
}

func (this *Verifier) unsigned(verdict contracts.Verdict, policy contracts.UnsignedPolicy) contracts.Verdict {
	if policy != contracts.AcceptUnsigned {
		return this.reject(verdict, contracts.UnsignedErr)
	}
	this.logger.Println("[WARN] Archive is not signed; provenance not established.")
	verdict.Status = contracts.ValidUnsigned
	return verdict
}

func (this *Verifier) advance(verdict contracts.Verdict, stage contracts.VerificationStage) contracts.Verdict {
	this.logger.Printf("[INFO] Verification stage reached: %s", stage)
	verdict.Stage = stage
	return verdict
}

func (this *Verifier) reject(verdict contracts.Verdict, reason error) contracts.Verdict {
	this.logger.Printf("[WARN] Verification failed after stage %s: %s", verdict.Stage, reason)
	verdict.Status = contracts.Invalid
	verdict.Reason = reason
	return verdict
}

var errNoTrustAnchor = errors.New("no public key file or repository host configured")
