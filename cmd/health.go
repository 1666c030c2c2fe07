// ABOUTME: Health command for the planventure CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the PlanVenture backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := api.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}
	return 0
}

// formatHealthHuman formats the health response for human readability
func formatHealthHuman(url string, resp *api.HealthStatus) string {
	return fmt.Sprintf(`Backend:  %s
Status:   %s
Time:     %s`, url, resp.Status, resp.Timestamp)
}

// formatHealthJSON formats the health response as JSON
func formatHealthJSON(url string, resp *api.HealthStatus) string {
	output := map[string]interface{}{
		"backend":   url,
		"status":    resp.Status,
		"timestamp": resp.Timestamp,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
