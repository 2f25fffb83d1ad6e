package cluster

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackvista/kluster-cli/cmd/connect"
	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/logger"
	"github.com/stackvista/kluster-cli/internal/output"
	"github.com/stackvista/kluster-cli/internal/resources"
)

func nodesCmd(cliCtx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List nodes with readiness and schedulability",
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runNodes(cliCtx, cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func runNodes(cliCtx *config.Context, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}

	return listNodes(conn.Client, output.NewFormatterWithWriter(out, cliCtx.Config.OutputFormat), time.Now())
}

func listNodes(client kube.Interface, formatter *output.Formatter, now time.Time) error {
	nodes, err := kube.Get[resources.NodeList](client, resources.NodesPath())
	if err != nil {
		return fmt.Errorf("failed to list nodes: %w", err)
	}

	table := output.Table{
		Headers: []string{"NAME", "STATUS", "AGE"},
		Rows:    make([][]string, 0, len(nodes.Items)),
	}
	for _, node := range nodes.Items {
		table.Rows = append(table.Rows, []string{
			node.Metadata.Name,
			nodeStatus(node),
			age(node.Metadata.CreationTimestamp, now),
		})
	}

	return formatter.PrintTable(table)
}

func nodeStatus(node resources.Node) string {
	status := "NotReady"
	if node.Ready() {
		status = "Ready"
	}
	if !node.Schedulable() {
		status += ",SchedulingDisabled"
	}
	return status
}
