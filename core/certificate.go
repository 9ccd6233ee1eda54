package core

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

type Certificate struct {
	Output     string
	PrivatePEM []byte
	PublicPEM  []byte
}

type CertificateIssuer struct {
	logger   *logging.Logger
	clock    *clock.Clock
	random   io.Reader
	bits     int
	storage  contracts.FileWriter
	archives ArchiveFactory
}

func NewCertificateIssuer(storage contracts.FileWriter, archives ArchiveFactory) *CertificateIssuer {
	return &CertificateIssuer{
		random:   rand.Reader,
		bits:     CertificateKeyBits,
		storage:  storage,
		archives: archives,
	}
}

// Issue writes a certificate archive holding a fresh key pair and, when
// publicKeyOutput is set, a standalone copy of the public key.
func (this *CertificateIssuer) Issue(output, publicKeyOutput string) (certificate Certificate, err error) {
	key, err := rsa.GenerateKey(this.random, this.bits)
	if err != nil {
		return Certificate{}, fmt.Errorf("could not generate key pair: %w", err)
	}
	certificate.PrivatePEM, err = cryptoutils.MarshalPrivateKeyToPEM(key)
	if err != nil {
		return Certificate{}, err
	}
	certificate.PublicPEM, err = cryptoutils.MarshalPublicKeyToPEM(&key.PublicKey)
	if err != nil {
		return Certificate{}, err
	}

	archive, err := assembleArchive(this.archives, this.clock.UTCNow(),
		Member{Name: contracts.PrivateKeySuffix, Content: certificate.PrivatePEM},
		Member{Name: contracts.PublicKeySuffix, Content: certificate.PublicPEM},
	)
	if err != nil {
		return Certificate{}, err
	}
	if err = this.storage.WriteFile(output, archive); err != nil {
		return Certificate{}, fmt.Errorf("could not write certificate archive %q: %w", output, err)
	}
	this.logger.Printf("[INFO] Certificate archive created: %q", output)

	if publicKeyOutput != "" {
		if err = this.storage.WriteFile(publicKeyOutput, certificate.PublicPEM); err != nil {
			return Certificate{}, fmt.Errorf("could not write public key %q: %w", publicKeyOutput, err)
		}
		this.logger.Printf("[INFO] Public key saved to: %q", publicKeyOutput)
	}

	certificate.Output = output
	return certificate, nil
}
