package shell

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mholt/archiver"

	"github.com/tinkwell/twless/contracts"
)

// CertificateKeyLocator reads keys from standalone PEM files or from
// certificate archives, where the first member whose name ends with the
// requested suffix (ignoring case) wins.
type CertificateKeyLocator struct {
	archives *archiver.Zip
}

func NewCertificateKeyLocator() *CertificateKeyLocator {
	return &CertificateKeyLocator{archives: archiver.NewZip()}
}

func (this *CertificateKeyLocator) Locate(path, suffix string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", contracts.KeySourceNotFoundErr, err)
	}
	isArchive := HasZipSignature(file)
	if !isArchive {
		defer func() { _ = file.Close() }()
		return io.ReadAll(file)
	}
	_ = file.Close()
	return this.search(path, suffix)
}

func (this *CertificateKeyLocator) search(path, suffix string) (found []byte, err error) {
	suffix = strings.ToLower(suffix)
	var readErr error
	walkErr := this.archives.Walk(path, func(file archiver.File) error {
		if !strings.HasSuffix(strings.ToLower(memberName(file)), suffix) {
			return nil
		}
		found, readErr = io.ReadAll(file)
		return archiver.ErrStopWalk
	})
	if walkErr != nil {
		return nil, fmt.Errorf("could not search certificate archive %q: %w", path, walkErr)
	}
	if readErr != nil {
		return nil, fmt.Errorf("could not read %s from %q: %w", suffix, path, readErr)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: no member ending in %s in %q", contracts.KeySourceNotFoundErr, suffix, path)
	}
	return found, nil
}

func memberName(file archiver.File) string {
	if header, ok := file.Header.(zip.FileHeader); ok {
		return header.Name
	}
	return file.Name()
}
