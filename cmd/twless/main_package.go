package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/tinkwell/twless/contracts"
	"github.com/tinkwell/twless/core"
	"github.com/tinkwell/twless/shell"
)

type packageFlags struct {
	profile     string
	multiThread bool
	tailCall    bool
	gc          bool
	certificate string
	output      string
}

func newPackageCommand() *cobra.Command {
	flags := &packageFlags{}
	command := &cobra.Command{
		Use:   "package [module.wasm ...]",
		Short: "Package modules into a firmware archive, signing it when a certificate is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := flags.configure(cmd, args)
			if err != nil {
				return err
			}
			return NewPackageApp(config, cmd.OutOrStdout()).Run()
		},
	}
	command.Flags().StringVar(&flags.profile, "profile", "", "YAML or JSON package profile ('-' reads stdin)")
	command.Flags().BoolVar(&flags.multiThread, "enable-multi-thread", false, "enable multi-threading in the firmware runtime")
	command.Flags().BoolVar(&flags.tailCall, "enable-tail-call", false, "enable tail calls in the firmware runtime")
	command.Flags().BoolVar(&flags.gc, "enable-gc", false, "enable garbage collection in the firmware runtime")
	command.Flags().StringVar(&flags.certificate, "certificate", "", "certificate archive or PEM file holding the private key")
	command.Flags().StringVarP(&flags.output, "output", "o", contracts.DefaultPackageOutput, "output archive path")
	return command
}

// configure starts from the profile, if any, and lets explicit flags and
// arguments override it.
func (this *packageFlags) configure(cmd *cobra.Command, args []string) (config contracts.PackageConfig, err error) {
	if this.profile != "" {
		loader := core.NewPackageProfileLoader(shell.NewDiskFileSystem(), cmd.InOrStdin())
		if config, err = loader.Load(this.profile); err != nil {
			return contracts.PackageConfig{}, err
		}
	}
	if len(args) > 0 {
		config.Modules = args
	}

	flags := cmd.Flags()
	if flags.Changed("enable-multi-thread") {
		config.EnableMultiThread = this.multiThread
	}
	if flags.Changed("enable-tail-call") {
		config.EnableTailCall = this.tailCall
	}
	if flags.Changed("enable-gc") {
		config.EnableGarbageCollection = this.gc
	}
	if flags.Changed("certificate") {
		config.Certificate = this.certificate
	}
	if flags.Changed("output") || config.Output == "" {
		config.Output = this.output
	}
	return config, core.ValidatePackageConfig(config)
}

type PackageApp struct {
	config contracts.PackageConfig
	stdout io.Writer
}

func NewPackageApp(config contracts.PackageConfig, stdout io.Writer) *PackageApp {
	return &PackageApp{config: config, stdout: stdout}
}

func (this *PackageApp) Run() error {
	packager := core.NewPackager(shell.NewDiskFileSystem(), shell.NewCertificateKeyLocator(), shell.NewDeflateArchiveWriter)
	result, err := packager.Package(this.config)
	if err != nil {
		return err
	}
	if !result.Signed {
		log.Println("[WARN] No certificate given; the archive is not signed.")
	}
	_, err = fmt.Fprintln(this.stdout, result.Output)
	return err
}
