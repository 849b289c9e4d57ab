package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent analysis requests",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of records to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	url := fmt.Sprintf("%s/api/history?limit=%d", baseURL(), historyLimit)
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach the service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service answered status %d", resp.StatusCode)
	}

	var body models.HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode history: %w", err)
	}

	if len(body.Requests) == 0 {
		fmt.Println("No requests recorded yet.")
		return nil
	}

	anyTruncated := false
	fmt.Printf("%-20s %-12s %-10s %6s %6s  %s\n", "CREATED", "METHOD", "STATUS", "WORDS", "MS", "DETAIL")
	for _, r := range body.Requests {
		words := fmt.Sprintf("%d", r.WordCount)
		if r.Truncated {
			words += "*"
			anyTruncated = true
		}
		fmt.Printf("%-20s %-12s %-10s %6s %6d  %s\n",
			r.CreatedAt.Local().Format(time.DateTime),
			r.MethodID, r.Status, words, r.DurationMs, r.Detail)
	}
	if anyTruncated {
		fmt.Println("\n* input exceeded the 512-word limit and was truncated")
	}
	return nil
}
