package cluster

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackvista/kluster-cli/cmd/connect"
	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/logger"
	"github.com/stackvista/kluster-cli/internal/output"
)

func getCmd(cliCtx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH",
		Short: "Print the raw object at an API path",
		Long:  `Print the object served at an API path, e.g. /api/v1/namespaces/default/pods/web-0, as JSON or YAML.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runGet(cliCtx, args[0], cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func runGet(cliCtx *config.Context, path string, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}

	return printRaw(conn.Client, path, output.NewFormatterWithWriter(out, cliCtx.Config.OutputFormat))
}

func printRaw(client kube.Interface, path string, formatter *output.Formatter) error {
	value, err := client.GetValue(path)
	if err != nil {
		return fmt.Errorf("failed to get '%s': %w", path, err)
	}
	return formatter.PrintValue(value)
}
