package core

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"fmt"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
	"github.com/sigstore/sigstore/pkg/signature"

	"github.com/tinkwell/twless/contracts"
)

const (
	SignatureHash      = crypto.SHA512
	MinimumKeyBits     = 2048
	CertificateKeyBits = 2048
)

type Signer struct {
	inner *signature.RSAPKCS1v15Signer
}

func LoadSigner(pemBytes []byte) (*Signer, error) {
	key, err := ParsePrivateKey(pemBytes)
	if err != nil {
		return nil, err
	}
	return NewSigner(key)
}

func NewSigner(key *rsa.PrivateKey) (*Signer, error) {
	if err := checkKeyStrength(&key.PublicKey); err != nil {
		return nil, err
	}
	inner, err := signature.LoadRSAPKCS1v15Signer(key, SignatureHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.KeyLoadErr, err)
	}
	return &Signer{inner: inner}, nil
}

func (this *Signer) Sign(manifest []byte) ([]byte, error) {
	signed, err := this.inner.SignMessage(bytes.NewReader(manifest))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.SigningErr, err)
	}
	return signed, nil
}

func ParsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	parsed, err := cryptoutils.UnmarshalPEMToPrivateKey(pemBytes, noPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.KeyLoadErr, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported private key type %T", contracts.KeyLoadErr, parsed)
	}
	return key, nil
}

func ParsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	parsed, err := cryptoutils.UnmarshalPEMToPublicKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", contracts.KeyLoadErr, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported public key type %T", contracts.KeyLoadErr, parsed)
	}
	if err = checkKeyStrength(key); err != nil {
		return nil, err
	}
	return key, nil
}

func checkKeyStrength(key *rsa.PublicKey) error {
	if key == nil || key.N == nil {
		return fmt.Errorf("%w: empty key", contracts.KeyLoadErr)
	}
	if bits := key.N.BitLen(); bits < MinimumKeyBits {
		return fmt.Errorf("%w: %d-bit modulus is below the %d-bit minimum", contracts.KeyLoadErr, bits, MinimumKeyBits)
	}
	return nil
}

func noPassword(bool) ([]byte, error) { return nil, nil }
