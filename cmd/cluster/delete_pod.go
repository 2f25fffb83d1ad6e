package cluster

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackvista/kluster-cli/cmd/connect"
	"github.com/stackvista/kluster-cli/internal/config"
	"github.com/stackvista/kluster-cli/internal/kube"
	"github.com/stackvista/kluster-cli/internal/logger"
	"github.com/stackvista/kluster-cli/internal/resources"
)

// maxStatusBody bounds how much of an error response is read for its message
const maxStatusBody = 64 * 1024

func deletePodCmd(cliCtx *config.Context) *cobra.Command {
	var skipConfirmation bool
	cmd := &cobra.Command{
		Use:   "delete-pod POD",
		Short: "Delete a pod",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDeletePod(cliCtx, args[0], skipConfirmation, cmd.InOrStdin()); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
		},
	}
	cmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompt")
	return cmd
}

func runDeletePod(cliCtx *config.Context, pod string, skipConfirmation bool, in io.Reader) error {
	log := logger.New(cliCtx.Config.Quiet, cliCtx.Config.Debug)

	conn, err := connect.Cluster(cliCtx, log)
	if err != nil {
		return err
	}
	namespace := conn.Namespace(cliCtx.Config)

	if !skipConfirmation {
		if err := confirmDeletion(in, conn.Profile.Name, namespace, pod); err != nil {
			return err
		}
	}

	if err := deletePod(conn.Client, namespace, pod); err != nil {
		return err
	}
	log.Successf("Deleted pod %s/%s", namespace, pod)
	return nil
}

// confirmDeletion prompts the user to confirm the pod deletion
func confirmDeletion(in io.Reader, cluster, namespace, pod string) error {
	_, _ = fmt.Fprintf(os.Stderr, "Delete pod %s/%s in cluster %s? (yes/no): ", namespace, pod, cluster)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "yes" && response != "y" {
		return fmt.Errorf("deletion cancelled by user")
	}
	return nil
}

// deletePod issues the DELETE and interprets the status itself, since
// Delete hands back every response unclassified
func deletePod(client kube.Interface, namespace, pod string) error {
	stream, err := client.Delete(resources.PodPath(namespace, pod))
	if err != nil {
		return fmt.Errorf("failed to delete pod '%s': %w", pod, err)
	}
	defer stream.Close()

	switch status := stream.StatusCode(); status {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("pod '%s' not found in namespace '%s'", pod, namespace)
	case http.StatusUnauthorized:
		return fmt.Errorf("failed to delete pod '%s': %w", pod, kube.ErrUnauthorized)
	default:
		return fmt.Errorf("failed to delete pod '%s': server returned %d: %s", pod, status, statusMessage(stream))
	}
}

// statusMessage extracts the message of a Kubernetes Status object, or the raw body
func statusMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxStatusBody))
	if err != nil {
		return err.Error()
	}
	var status struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &status); err == nil && status.Message != "" {
		return status.Message
	}
	return strings.TrimSpace(string(data))
}
