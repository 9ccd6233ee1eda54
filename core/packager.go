package core

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"

	"github.com/tinkwell/twless/contracts"
)

type PackageResult struct {
	Output     string
	Descriptor contracts.FirmwareDescriptor
	Manifest   contracts.Manifest
	Signed     bool
}

type Packager struct {
	logger   *logging.Logger
	clock    *clock.Clock
	storage  contracts.FileSystem
	keys     contracts.KeyLocator
	archives ArchiveFactory
}

func NewPackager(storage contracts.FileSystem, keys contracts.KeyLocator, archives ArchiveFactory) *Packager {
	return &Packager{storage: storage, keys: keys, archives: archives}
}

func (this *Packager) Package(config contracts.PackageConfig) (result PackageResult, err error) {
	signer, err := this.loadSigner(config.Certificate)
	if err != nil {
		return PackageResult{}, err
	}

	modules, err := this.readModules(config.Modules)
	if err != nil {
		return PackageResult{}, err
	}

	result.Descriptor = config.Descriptor(memberNames(modules))
	descriptor, err := json.MarshalIndent(result.Descriptor, "", "  ")
	if err != nil {
		return PackageResult{}, err
	}

	protected := append([]Member{{Name: contracts.DescriptorMemberName, Content: descriptor}}, modules...)
	manifest, manifestBytes, err := BuildManifest(protected...)
	if err != nil {
		return PackageResult{}, err
	}

	members := append(protected, Member{Name: contracts.ManifestMemberName, Content: manifestBytes})
	if signer != nil {
		signed, err := signer.Sign(manifestBytes)
		if err != nil {
			return PackageResult{}, err
		}
		members = append(members, Member{Name: contracts.ManifestSignatureMemberName, Content: signed})
	}

	archive, err := assembleArchive(this.archives, this.clock.UTCNow(), members...)
	if err != nil {
		return PackageResult{}, fmt.Errorf("could not assemble archive: %w", err)
	}
	if err = this.storage.WriteFile(config.Output, archive); err != nil {
		return PackageResult{}, fmt.Errorf("could not write archive %q: %w", config.Output, err)
	}

	this.logger.Printf("[INFO] Wrote %d members to %q (signed: %t).", len(members), config.Output, signer != nil)
	result.Output = config.Output
	result.Manifest = manifest
	result.Signed = signer != nil
	return result, nil
}

func (this *Packager) loadSigner(source string) (*Signer, error) {
	if source == "" {
		return nil, nil
	}
	raw, err := this.keys.Locate(source, contracts.PrivateKeySuffix)
	if err != nil {
		return nil, err
	}
	return LoadSigner(raw)
}

func (this *Packager) readModules(paths []string) (modules []Member, err error) {
	for _, path := range paths {
		this.logger.Printf("[INFO] Adding %q to archive.", path)
		content, err := this.storage.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read module %q: %w", path, err)
		}
		modules = append(modules, Member{Name: filepath.Base(path), Content: content})
	}
	return modules, nil
}

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}
	return names
}
