package core

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tinkwell/twless/contracts"
)

const (
	manifestLineSeparator = "\n"
	manifestNameQuote     = `"`
	manifestDigestLength  = 128
)

func EncodeManifest(manifest contracts.Manifest) []byte {
	buffer := new(bytes.Buffer)
	for i, entry := range manifest.Entries {
		if i > 0 {
			buffer.WriteString(manifestLineSeparator)
		}
		buffer.WriteString(encodeManifestLine(entry))
	}
	return buffer.Bytes()
}

func encodeManifestLine(entry contracts.ManifestEntry) string {
	return manifestNameQuote + entry.Name + manifestNameQuote + " " + entry.Algorithm + " " + entry.Digest
}

// DecodeManifest parses every line before returning so that a malformed
// manifest is rejected as a whole.
func DecodeManifest(raw []byte) (manifest contracts.Manifest, err error) {
	for number, line := range strings.Split(string(raw), manifestLineSeparator) {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := decodeManifestLine(line)
		if err != nil {
			return contracts.Manifest{}, fmt.Errorf("%w: line %d: %s", contracts.MalformedManifestErr, number+1, err)
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	if len(manifest.Entries) == 0 {
		return contracts.Manifest{}, fmt.Errorf("%w: no entries", contracts.MalformedManifestErr)
	}
	return manifest, nil
}

func decodeManifestLine(line string) (entry contracts.ManifestEntry, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, manifestNameQuote) {
		return entry, errUnquotedName
	}
	closing := strings.Index(line[1:], manifestNameQuote)
	if closing < 0 {
		return entry, errUnquotedName
	}
	entry.Name = line[1 : closing+1]
	if entry.Name == "" {
		return entry, errBlankName
	}
	if strings.IndexFunc(entry.Name, unicode.IsSpace) >= 0 {
		return entry, errWhitespaceName
	}

	rest := line[closing+2:]
	if !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") {
		return entry, errFieldSeparator
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return entry, fmt.Errorf("expected 3 fields, found %d", len(fields)+1)
	}
	entry.Algorithm, entry.Digest = fields[0], fields[1]

	if entry.Algorithm != contracts.ManifestAlgorithmSHA512 {
		return entry, fmt.Errorf("unsupported algorithm %q", entry.Algorithm)
	}
	if !isHexDigest(entry.Digest) {
		return entry, errDigestFormat
	}
	return entry, nil
}

func isHexDigest(value string) bool {
	if len(value) != manifestDigestLength {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}

var (
	errUnquotedName   = errors.New("member name must be enclosed in double quotes")
	errBlankName      = errors.New("member name is blank")
	errFieldSeparator = errors.New("member name must be followed by whitespace")
	errDigestFormat   = errors.New("digest must be 128 hexadecimal characters")
)
