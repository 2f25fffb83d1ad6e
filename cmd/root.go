package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/stackvista/kluster-cli/cmd/cluster"
	"github.com/stackvista/kluster-cli/cmd/version"
	"github.com/stackvista/kluster-cli/internal/config"
)

var (
	cliCtx *config.Context
)

// addClusterFlags adds the flags selecting and authenticating against a cluster
// to commands that talk to the Kubernetes API
func addClusterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cliCtx.Config.ConfigPath, "config", config.DefaultConfigPath(), "Path to the cluster profile file")
	cmd.PersistentFlags().StringVar(&cliCtx.Config.CredentialsPath, "credentials", config.DefaultCredentialsPath(), "Path to the credentials file merged over the profile file")
	cmd.PersistentFlags().StringVar(&cliCtx.Config.Kubeconfig, "kubeconfig", "", "Import cluster profiles from a kubeconfig file instead of the profile file")
	cmd.PersistentFlags().StringVarP(&cliCtx.Config.Cluster, "cluster", "c", "", "Cluster profile to use (default: the current profile)")
	cmd.PersistentFlags().StringVarP(&cliCtx.Config.Namespace, "namespace", "n", "", "Kubernetes namespace (default: the profile's namespace)")
	cmd.PersistentFlags().BoolVar(&cliCtx.Config.Debug, "debug", false, "Enable debug output")
	cmd.PersistentFlags().BoolVarP(&cliCtx.Config.Quiet, "quiet", "q", false, "Suppress operational messages (only show errors and data output)")
	cmd.PersistentFlags().StringVarP(&cliCtx.Config.OutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
}

func init() {
	cliCtx = config.NewContext()

	clusterCmd := cluster.Cmd(cliCtx)
	addClusterFlags(clusterCmd)
	rootCmd.AddCommand(clusterCmd)

	rootCmd.AddCommand(version.Cmd())
}

var rootCmd = &cobra.Command{
	Use:   "kluster",
	Short: "Lightweight client for the Kubernetes API",
	Long: `A CLI tool for inspecting Kubernetes clusters over the REST API, authenticating
with a bearer token or a client certificate against a pinned CA.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
