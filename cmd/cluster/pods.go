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

func podsCmd(cliCtx *config.Context) *cobra.Command {
	var allNamespaces bool
	cmd := &cobra.Command{
		Use:   "pods",
		Short: "List pods and their phase",
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runPods(cliCtx, allNamespaces, cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().BoolVarP(&allNamespaces, "all-namespaces", "A", false, "List pods in all namespaces")
	return cmd
}

func runPods(cliCtx *config.Context, allNamespaces bool, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}

	namespace := conn.Namespace(cliCtx.Config)
	if allNamespaces {
		namespace = ""
	}

	formatter := output.NewFormatterWithWriter(out, cliCtx.Config.OutputFormat)
	return listPods(conn.Client, namespace, formatter, time.Now())
}

func listPods(client kube.Interface, namespace string, formatter *output.Formatter, now time.Time) error {
	pods, err := kube.Get[resources.PodList](client, resources.PodsPath(namespace))
	if err != nil {
		return fmt.Errorf("failed to list pods: %w", err)
	}

	table := output.Table{
		Headers: []string{"NAME", "NAMESPACE", "PHASE", "AGE"},
		Rows:    make([][]string, 0, len(pods.Items)),
	}
	for _, pod := range pods.Items {
		ns := ""
		if pod.Metadata.Namespace != nil {
			ns = *pod.Metadata.Namespace
		}
		table.Rows = append(table.Rows, []string{
			pod.Metadata.Name,
			ns,
			string(pod.Status.Phase),
			age(pod.Metadata.CreationTimestamp, now),
		})
	}

	return formatter.PrintTable(table)
}
