package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinkwell/twless/contracts"
	"github.com/tinkwell/twless/core"
	"github.com/tinkwell/twless/shell"
)

type validateFlags struct {
	publicKey     string
	certificate   string
	allowUnsigned bool
}

func newValidateCommand(settings *viper.Viper) *cobra.Command {
	flags := &validateFlags{}
	command := &cobra.Command{
		Use:   "validate <firmware.zip>",
		Short: "Verify the integrity and signature of a firmware archive",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindHost(settings, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewValidateApp(flags.configure(args[0], repositoryHost(settings)), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
	command.Flags().StringVar(&flags.publicKey, "public-key", "", "PEM file holding the trusted public key")
	command.Flags().StringVar(&flags.certificate, "certificate", "", "certificate archive holding the trusted public key")
	command.Flags().String(hostFlag, "", "repository host serving the trusted public key (default $TW_REPOSITORY_HOST)")
	command.Flags().BoolVar(&flags.allowUnsigned, "allow-unsigned", false, "accept archives without a signature after the integrity check")
	command.MarkFlagsMutuallyExclusive("public-key", "certificate")
	return command
}

func (this *validateFlags) configure(archive, host string) contracts.VerifyConfig {
	keyFile := this.publicKey
	if keyFile == "" {
		keyFile = this.certificate
	}
	policy := contracts.RejectUnsigned
	if this.allowUnsigned {
		policy = contracts.AcceptUnsigned
	}
	return contracts.VerifyConfig{
		ArchivePath:    archive,
		Anchor:         contracts.SelectTrustAnchor(keyFile, host),
		UnsignedPolicy: policy,
	}
}

type ValidateApp struct {
	config contracts.VerifyConfig
	stdout io.Writer
}

func NewValidateApp(config contracts.VerifyConfig, stdout io.Writer) *ValidateApp {
	return &ValidateApp{config: config, stdout: stdout}
}

func (this *ValidateApp) Run(ctx context.Context) error {
	identity := shell.NewIdentityClient(shell.NewHTTPClient(shell.IdentityFetchTimeout))
	resolver := core.NewTrustAnchorResolver(shell.NewCertificateKeyLocator(), identity)
	verifier := core.NewVerifier(shell.NewZipArchiveOpener(), resolver)

	verdict := verifier.Verify(ctx, this.config)
	if _, err := fmt.Fprintln(this.stdout, verdict.Status); err != nil {
		return err
	}
	if !verdict.Accepted() {
		return fmt.Errorf("%s: %w", this.config.ArchivePath, verdict.Reason)
	}
	return nil
}
