package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CalleFreme/ai-methods-explorer/internal/workbench"
)

var methodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List the available analysis methods",
	RunE:  runMethods,
}

func runMethods(cmd *cobra.Command, _ []string) error {
	loader := workbench.NewLoader(baseURL(), httpClient)
	methods, err := loader.Methods(cmd.Context())
	if err != nil {
		if errors.Is(err, workbench.ErrCatalogUnavailable) {
			return errors.New(workbench.CatalogLoadMessage)
		}
		return err
	}

	for _, method := range methods {
		fmt.Printf("%-12s %s\n", method.ID, method.Name)
		fmt.Printf("%-12s %s\n", "", method.Description)
		fmt.Printf("%-12s model: %s\n\n", "", method.ModelShortName())
	}
	return nil
}
