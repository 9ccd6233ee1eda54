package core

import (
	"bytes"
	"crypto/rsa"

	"github.com/sigstore/sigstore/pkg/signature"
	"github.com/smartystreets/logging"
)

type SignatureVerifier struct {
	logger *logging.Logger
	key    *rsa.PublicKey
}

func LoadSignatureVerifier(pemBytes []byte) (*SignatureVerifier, error) {
	key, err := ParsePublicKey(pemBytes)
	if err != nil {
		return nil, err
	}
	return NewSignatureVerifier(key), nil
}

func NewSignatureVerifier(key *rsa.PublicKey) *SignatureVerifier {
	return &SignatureVerifier{key: key}
}

// Verify reports whether signed is a valid signature over the exact manifest
// bytes. Every failure of the primitive, including a panic, is a rejection.
func (this *SignatureVerifier) Verify(manifest, signed []byte) (valid bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			this.logger.Printf("[WARN] signature verification aborted: %v", recovered)
			valid = false
		}
	}()

	if this.key == nil || len(signed) == 0 {
		return false
	}
	inner, err := signature.LoadRSAPKCS1v15Verifier(this.key, SignatureHash)
	if err != nil {
		this.logger.Printf("[WARN] signature verifier unavailable: %s", err)
		return false
	}
	err = inner.VerifySignature(bytes.NewReader(signed), bytes.NewReader(manifest))
	if err != nil {
		this.logger.Printf("[INFO] signature rejected: %s", err)
		return false
	}
	return true
}
