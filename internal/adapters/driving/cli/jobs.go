package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

var jobsLimit int

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List submitted training jobs",
	Long: `Lists training jobs recorded in the local ledger, newest first.

States reflect the last sync; run 'vtrain jobs sync' to refresh them from
Vertex AI.`,
	RunE: runJobs,
}

var jobsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh job states from Vertex AI",
	Long: `Fetches the current state of every non-terminal job in the ledger
from Vertex AI and updates the local records.`,
	RunE: runJobsSync,
}

func init() {
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 20, "maximum jobs to list (0 for all)")
	jobsCmd.AddCommand(jobsSyncCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	if submitterService == nil {
		return errors.New("submitter service not configured")
	}

	subs, err := submitterService.List(cmd.Context(), jobsLimit)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	printSubmissions(cmd, subs)
	return nil
}

func runJobsSync(cmd *cobra.Command, _ []string) error {
	if submitterService == nil {
		return errors.New("submitter service not configured")
	}

	subs, err := submitterService.SyncStates(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to sync job states: %w", err)
	}

	printSubmissions(cmd, subs)
	return nil
}

func printSubmissions(cmd *cobra.Command, subs []domain.Submission) {
	if len(subs) == 0 {
		cmd.Println("No jobs submitted yet.")
		return
	}

	for i := range subs {
		sub := &subs[i]
		cmd.Printf("  %s  %-10s  %s\n", sub.CreatedAt.Local().Format("2006-01-02 15:04"), sub.State.Short(), sub.DisplayName)
		cmd.Printf("    Job: %s\n", sub.JobID())
		cmd.Printf("    Console: %s\n", sub.ConsoleURL())
		cmd.Println()
	}

	cmd.Printf("Total: %d jobs\n", len(subs))
}
