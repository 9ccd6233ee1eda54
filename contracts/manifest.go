package contracts

const (
	DescriptorMemberName        = "firmware.json"
	ManifestMemberName          = "integrity/manifest.txt"
	ManifestSignatureMemberName = "integrity/manifest.sig"

	ManifestAlgorithmSHA512 = "SHA512"
	ModuleExtension         = ".wasm"
)

type ManifestEntry struct {
	Name      string
	Algorithm string
	Digest    string
}

// Manifest lists the protected archive members in the order they were added.
// That order is part of the signed payload.
type Manifest struct {
	Entries []ManifestEntry
}

func (this Manifest) Names() (names []string) {
	for _, entry := range this.Entries {
		names = append(names, entry.Name)
	}
	return names
}

func (this Manifest) Contains(name string) bool {
	for _, entry := range this.Entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}

type FirmwareDescriptor struct {
	EnableMultiThread       bool     `json:"EnableMultiThread"`
	EnableTailCall          bool     `json:"EnableTailCall"`
	EnableGarbageCollection bool     `json:"EnableGarbageCollection"`
	CompilationUnits        []string `json:"CompilationUnits"`
}

type IntegrityCheck interface {
	Verify(manifest Manifest, archive ArchiveReader) error
}
