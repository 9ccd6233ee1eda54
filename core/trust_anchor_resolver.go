package core

import (
	"context"
	"fmt"

	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

// TrustAnchorResolver loads the public key for one verification run. Nothing
// is cached between runs.
type TrustAnchorResolver struct {
	logger   *logging.Logger
	keys     contracts.KeyLocator
	identity contracts.IdentitySource
}

func NewTrustAnchorResolver(keys contracts.KeyLocator, identity contracts.IdentitySource) *TrustAnchorResolver {
	return &TrustAnchorResolver{keys: keys, identity: identity}
}

func (this *TrustAnchorResolver) Resolve(ctx context.Context, anchor contracts.TrustAnchor) (*SignatureVerifier, error) {
	this.logger.Printf("[INFO] Resolving trust anchor from %s.", anchor)

	var (
		verifier *SignatureVerifier
		err      error
	)
	switch anchor.Kind {
	case contracts.ExplicitTrustAnchor:
		verifier, err = this.resolveExplicit(anchor.Location)
	case contracts.RemoteTrustAnchor:
		verifier, err = this.resolveRemote(ctx, anchor.Location)
	default:
		return nil, fmt.Errorf("%w: %s", contracts.TrustAnchorUnavailableErr, errNoTrustAnchor)
	}
	if err != nil {
		return nil, err
	}
	verifier.logger = this.logger
	return verifier, nil
}

func (this *TrustAnchorResolver) resolveExplicit(path string) (*SignatureVerifier, error) {
	raw, err := this.keys.Locate(path, contracts.PublicKeySuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.KeyLoadErr, err)
	}
	return LoadSignatureVerifier(raw)
}

func (this *TrustAnchorResolver) resolveRemote(ctx context.Context, host string) (*SignatureVerifier, error) {
	raw, err := this.identity.FetchIdentity(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.TrustAnchorUnavailableErr, err)
	}
	verifier, err := LoadSignatureVerifier(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: identity of %q: %s", contracts.TrustAnchorUnavailableErr, host, err)
	}
	return verifier, nil
}
