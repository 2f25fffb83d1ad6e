package cluster

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackvista/kluster-cli/cmd/connect"
	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/logger"
	"github.com/stackvista/kluster-cli/internal/output"
)

func contextsCmd(cliCtx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "contexts",
		Short: "List the configured cluster profiles",
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runContexts(cliCtx, cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func runContexts(cliCtx *config.Context, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	profiles, err := connect.LoadProfiles(cliCtx.Config, log)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return printContexts(profiles, output.NewFormatterWithWriter(out, cliCtx.Config.OutputFormat))
}

func printContexts(profiles *config.Config, formatter *output.Formatter) error {
	table := output.Table{
		Headers: []string{"CURRENT", "NAME", "SERVER", "AUTH", "NAMESPACE"},
		Rows:    make([][]string, 0, len(profiles.Clusters)),
	}
	for _, p := range profiles.Clusters {
		current := ""
		if p.Name == profiles.Current {
			current = "*"
		}
		table.Rows = append(table.Rows, []string{current, p.Name, p.Server, p.AuthMode(), p.Namespace})
	}
	return formatter.PrintTable(table)
}
