package contracts

type PackageConfig struct {
	Modules                 []string `yaml:"modules"`
	EnableMultiThread       bool     `yaml:"enable_multi_thread"`
	EnableTailCall          bool     `yaml:"enable_tail_call"`
	EnableGarbageCollection bool     `yaml:"enable_gc"`
	Certificate             string   `yaml:"certificate"`
	Output                  string   `yaml:"output"`
}

func (this PackageConfig) Descriptor(units []string) FirmwareDescriptor {
	return FirmwareDescriptor{
		EnableMultiThread:       this.EnableMultiThread,
		EnableTailCall:          this.EnableTailCall,
		EnableGarbageCollection: this.EnableGarbageCollection,
		CompilationUnits:        units,
	}
}

type VerifyConfig struct {
	ArchivePath    string
	Anchor         TrustAnchor
	UnsignedPolicy UnsignedPolicy
}

const DefaultPackageOutput = "firmware.zip"
const DefaultCertificateOutput = "vendor-certificate.zip"
