package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	environmentPrefix = "TW"
	repositoryHostKey = "repository_host"
	hostFlag          = "host"
)

// NewRootCommand assembles the command tree. Settings are read from flags and
// TW_* environment variables through the supplied viper instance.
func NewRootCommand(settings *viper.Viper) *cobra.Command {
	settings.SetEnvPrefix(environmentPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	root := &cobra.Command{
		Use:           "twless",
		Short:         "Package, sign, and verify firmware archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	firmware := &cobra.Command{Use: "firmware", Short: "Build and validate firmware archives"}
	firmware.AddCommand(newPackageCommand(), newValidateCommand(settings))

	certificate := &cobra.Command{Use: "certificate", Short: "Manage vendor signing certificates"}
	certificate.AddCommand(newCertificateCommand())

	repository := &cobra.Command{Use: "repository", Short: "Query the firmware repository"}
	repository.AddCommand(newIdentityCommand(settings))

	root.AddCommand(firmware, certificate, repository, newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "twless [%s]\n", ldflagsSoftwareVersion)
		},
	}
}

// bindHost ties the running command's --host flag to TW_REPOSITORY_HOST; the
// flag wins when given.
func bindHost(settings *viper.Viper, cmd *cobra.Command) error {
	return settings.BindPFlag(repositoryHostKey, cmd.Flags().Lookup(hostFlag))
}

func repositoryHost(settings *viper.Viper) string {
	return strings.TrimSpace(settings.GetString(repositoryHostKey))
}
