// The explorer command is a terminal client for the AI Methods Explorer
// service: list the available methods, run one on a text and browse the
// request history.
package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "explorer",
	Short: "Terminal client for the AI Methods Explorer service",
	Long: `Terminal client for the AI Methods Explorer service.

Pick one of the text-analysis methods the service exposes, feed it text from
a flag or stdin and read the rendered result. Inputs beyond 512 words are
truncated before submission.`,
}

func main() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the explorer service")

	rootCmd.AddCommand(methodsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// baseURL returns the configured server location without a trailing slash.
func baseURL() string {
	return strings.TrimSuffix(serverURL, "/")
}

// httpClient is shared by all subcommands; the transport's defaults apply,
// matching the service's own outbound calls.
var httpClient = http.DefaultClient
