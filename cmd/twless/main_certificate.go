package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tinkwell/twless/contracts"
	"github.com/tinkwell/twless/core"
	"github.com/tinkwell/twless/shell"
)

func newCertificateCommand() *cobra.Command {
	var output, publicKeyOutput string
	command := &cobra.Command{
		Use:   "create",
		Short: "Generate a vendor certificate archive with a fresh RSA key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewCertificateApp(output, publicKeyOutput, cmd.OutOrStdout()).Run()
		},
	}
	command.Flags().StringVarP(&output, "output", "o", contracts.DefaultCertificateOutput, "certificate archive path")
	command.Flags().StringVar(&publicKeyOutput, "public-key-output", "", "also write the public key to this file (printed when omitted)")
	return command
}

type CertificateApp struct {
	output          string
	publicKeyOutput string
	stdout          io.Writer
}

func NewCertificateApp(output, publicKeyOutput string, stdout io.Writer) *CertificateApp {
	return &CertificateApp{output: output, publicKeyOutput: publicKeyOutput, stdout: stdout}
}

func (this *CertificateApp) Run() error {
	issuer := core.NewCertificateIssuer(shell.NewDiskFileSystem(), shell.NewDeflateArchiveWriter)
	certificate, err := issuer.Issue(this.output, this.publicKeyOutput)
	if err != nil {
		return err
	}
	if this.publicKeyOutput == "" {
		_, err = this.stdout.Write(certificate.PublicPEM)
	}
	return err
}
