package cluster

import (
	"time"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/duration"

	"github.com/stackvista/kluster-cli/internal/config"
)

func Cmd(cliCtx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect and manage resources of a cluster",
	}

	cmd.AddCommand(podsCmd(cliCtx))
	cmd.AddCommand(nodesCmd(cliCtx))
	cmd.AddCommand(eventsCmd(cliCtx))
	cmd.AddCommand(logsCmd(cliCtx))
	cmd.AddCommand(getCmd(cliCtx))
	cmd.AddCommand(deletePodCmd(cliCtx))
	cmd.AddCommand(contextsCmd(cliCtx))

	return cmd
}

// age renders the time since t the way kubectl does
func age(t *metav1.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return "<unknown>"
	}
	return duration.HumanDuration(now.Sub(t.Time))
}
