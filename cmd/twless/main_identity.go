package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinkwell/twless/contracts"
	"github.com/tinkwell/twless/core"
	"github.com/tinkwell/twless/shell"
)

func newIdentityCommand(settings *viper.Viper) *cobra.Command {
	command := &cobra.Command{
		Use:   "identity",
		Short: "Print the public key the repository signs with",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindHost(settings, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return NewIdentityApp(repositoryHost(settings), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
	command.Flags().String(hostFlag, "", "repository host (default $TW_REPOSITORY_HOST)")
	return command
}

type IdentityApp struct {
	host   string
	stdout io.Writer
}

func NewIdentityApp(host string, stdout io.Writer) *IdentityApp {
	return &IdentityApp{host: host, stdout: stdout}
}

func (this *IdentityApp) Run(ctx context.Context) error {
	if this.host == "" {
		return fmt.Errorf("%w: %w", contracts.TrustAnchorUnavailableErr, errNoRepositoryHost)
	}
	client := shell.NewIdentityClient(shell.NewHTTPClient(shell.IdentityFetchTimeout))
	identity, err := client.FetchIdentity(ctx, this.host)
	if err != nil {
		return fmt.Errorf("%w: %w", contracts.TrustAnchorUnavailableErr, err)
	}
	if _, err = core.ParsePublicKey(identity); err != nil {
		return fmt.Errorf("%w: %w", contracts.TrustAnchorUnavailableErr, err)
	}
	_, err = this.stdout.Write(identity)
	return err
}

var errNoRepositoryHost = errors.New("no repository host given (use --host or TW_REPOSITORY_HOST)")
