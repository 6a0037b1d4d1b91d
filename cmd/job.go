package cmd

import (
	"fmt"
	"time"

	"aisgo/ais"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// jobCmd groups commands around asynchronous cluster jobs
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect the cluster's asynchronous jobs",
}

var jobStatusCmd = &cobra.Command{
	Use:   "status [id]",
	Short: "Show the state of a job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()

		status, err := client.GetJobStatus(cmd.Context(), args[0])
		if err != nil {
			logg.Fatal("Failed to query job", zap.Error(err))
		}
		printJobStatus(status)
	},
}

var jobWaitCmd = &cobra.Command{
	Use:   "wait [id]",
	Short: "Block until a job finishes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, logg := newClient()
		waitForJob(cmd, client, logg, args[0])
	},
}

func waitForJob(cmd *cobra.Command, client *ais.Client, logg *zap.Logger, jobID string) {
	status, err := client.WaitForJob(cmd.Context(), jobID)
	if err != nil {
		logg.Fatal("Job did not finish", zap.Error(err))
	}
	printJobStatus(status)
}

func printJobStatus(status *ais.JobStatus) {
	state := "\033[33mRunning\033[0m" // Yellow
	switch {
	case status.Aborted:
		state = "\033[31mAborted\033[0m" // Red
	case status.Finished():
		state = "\033[32mFinished\033[0m" // Green
	}

	fmt.Println("--- Job Status ---")
	fmt.Printf("ID:        %s\n", status.UUID)
	fmt.Printf("State:     %s\n", state)
	if status.Finished() {
		fmt.Printf("End time:  %s\n", time.Unix(0, status.EndTime).Format(time.RFC3339))
	}
	if status.ErrMsg != "" {
		fmt.Printf("Error:     %s\n", status.ErrMsg)
	}
	fmt.Println("------------------")
}

func init() {
	jobCmd.AddCommand(jobStatusCmd, jobWaitCmd)
	RootCmd.AddCommand(jobCmd)
}
