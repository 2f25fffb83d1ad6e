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
	"github.com/stackvista/kluster-cli/internal/resources"
)

type logsOptions struct {
	container string
	follow    bool
	tail      int64
	timeout   time.Duration
}

func logsCmd(cliCtx *config.Context) *cobra.Command {
	opts := &logsOptions{}
	cmd := &cobra.Command{
		Use:   "logs POD",
		Short: "Print or follow the logs of a pod",
		Long: `Print the logs of a pod. With --follow the logs are streamed until interrupted.
With --timeout the stream is aborted when the server sends nothing for that long.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runLogs(cliCtx, args[0], opts, cmd.OutOrStdout()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&opts.container, "container", "", "Container to print logs of (default: the pod's only container)")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Stream new log lines as they are written")
	cmd.Flags().Int64Var(&opts.tail, "tail", 0, "Only print the last N lines")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort when no data arrives for this long (e.g. 30s)")
	return cmd
}

func runLogs(cliCtx *config.Context, pod string, opts *logsOptions, out io.Writer) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}

	return streamLogs(conn.Client, conn.Namespace(cliCtx.Config), pod, opts, out)
}

func streamLogs(client kube.Interface, namespace, pod string, opts *logsOptions, out io.Writer) error {
	path := resources.PodLogPath(namespace, pod, resources.LogOptions{
		Container: opts.container,
		Follow:    opts.follow,
		TailLines: opts.tail,
	})

	stream, err := client.GetRead(path, opts.timeout)
	if err != nil {
		return fmt.Errorf("failed to get logs of pod '%s': %w", pod, err)
	}
	defer stream.Close()

	if _, err := io.Copy(out, stream); err != nil {
		return fmt.Errorf("log stream of pod '%s' interrupted: %w", pod, err)
	}
	return nil
}
