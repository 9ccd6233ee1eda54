package core

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinkwell/twless/contracts"
)

const StandardInputPath = "-"

// PackageProfileLoader reads package settings from a YAML (or JSON) profile.
type PackageProfileLoader struct {
	storage contracts.FileReader
	stdin   io.Reader
}

func NewPackageProfileLoader(storage contracts.FileReader, stdin io.Reader) *PackageProfileLoader {
	return &PackageProfileLoader{storage: storage, stdin: stdin}
}

func (this *PackageProfileLoader) Load(path string) (config contracts.PackageConfig, err error) {
	raw, err := this.readRaw(path)
	if err != nil {
		return contracts.PackageConfig{}, err
	}
	if err = yaml.Unmarshal(raw, &config); err != nil {
		return contracts.PackageConfig{}, fmt.Errorf("could not parse profile %q: %w", path, err)
	}
	if dir := this.baseDirectory(path); dir != "" {
		config = resolveRelativePaths(config, dir)
	}
	return config, nil
}

func (this *PackageProfileLoader) readRaw(path string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, blankProfilePathErr
	}
	if path == StandardInputPath {
		return io.ReadAll(this.stdin)
	}
	return this.storage.ReadFile(path)
}

func (this *PackageProfileLoader) baseDirectory(path string) string {
	if path == StandardInputPath {
		return ""
	}
	return filepath.Dir(path)
}

func resolveRelativePaths(config contracts.PackageConfig, dir string) contracts.PackageConfig {
	modules := make([]string, 0, len(config.Modules))
	for _, module := range config.Modules {
		modules = append(modules, resolveRelative(dir, module))
	}
	config.Modules = modules
	config.Certificate = resolveRelative(dir, config.Certificate)
	config.Output = resolveRelative(dir, config.Output)
	return config
}

func resolveRelative(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func ValidatePackageConfig(config contracts.PackageConfig) error {
	if len(config.Modules) == 0 {
		return noModulesErr
	}
	if strings.TrimSpace(config.Output) == "" {
		return blankOutputErr
	}
	seen := make(map[string]string)
	for _, module := range config.Modules {
		if strings.TrimSpace(module) == "" {
			return blankModulePathErr
		}
		name := filepath.Base(module)
		if other, found := seen[name]; found {
			return fmt.Errorf("%w: %q and %q", duplicateModuleErr, other, module)
		}
		seen[name] = module
	}
	return nil
}

var (
	blankProfilePathErr = errors.New("profile path must be populated")
	noModulesErr        = errors.New("at least one module is required")
	blankModulePathErr  = errors.New("module path should not be blank")
	blankOutputErr      = errors.New("output path should not be blank")
	duplicateModuleErr  = errors.New("modules must have distinct file names")
)
