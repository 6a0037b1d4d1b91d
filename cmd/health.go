package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// healthCmd pings the cluster gateway
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the cluster gateway is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()

		if err := client.Health(cmd.Context()); err != nil {
			logg.Fatal("Cluster is not healthy", zap.Error(err))
		}
		fmt.Println("\033[32mCluster is up\033[0m")
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
}
