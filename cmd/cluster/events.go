package cluster

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stackvista/kluster-cli/cmd/connect"
	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/logger"
	"github.com/stackvista/kluster-cli/internal/output"
	"github.com/stackvista/kluster-cli/internal/resources"
)

func eventsCmd(cliCtx *config.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "events [POD]",
		Short: "List events in the namespace, optionally only those involving a pod",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pod := ""
			if len(args) == 1 {
				pod = args[0]
			}
			if err := runEvents(cliCtx, pod, cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func runEvents(cliCtx *config.Context, pod string, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}

	formatter := output.NewFormatterWithWriter(out, cliCtx.Config.OutputFormat)
	return listEvents(conn.Client, conn.Namespace(cliCtx.Config), pod, formatter, time.Now())
}

func listEvents(client kube.Interface, namespace, pod string, formatter *output.Formatter, now time.Time) error {
	events, err := kube.Get[resources.EventList](client, resources.EventsPath(namespace, pod))
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(events.Items) == 0 && formatter.Format() == output.FormatTable {
		formatter.PrintMessage("No events found")
		return nil
	}

	// oldest first, so the most recent event ends up next to the prompt
	sort.SliceStable(events.Items, func(i, j int) bool {
		return events.Items[i].LastTimestamp.Before(&events.Items[j].LastTimestamp)
	})

	table := output.Table{
		Headers: []string{"LAST SEEN", "COUNT", "REASON", "MESSAGE"},
		Rows:    make([][]string, 0, len(events.Items)),
	}
	for _, ev := range events.Items {
		lastSeen := ev.LastTimestamp
		table.Rows = append(table.Rows, []string{
			age(&lastSeen, now),
			strconv.FormatUint(uint64(ev.Count), 10),
			ev.Reason,
			ev.Message,
		})
	}

	return formatter.PrintTable(table)
}
