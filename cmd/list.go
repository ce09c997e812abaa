package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ollama/pretokenize/api"
	"github.com/ollama/pretokenize/pretokenizer"
)

func ListHandler(cmd *cobra.Command, args []string) error {
	types := pretokenizer.Types()
	if remote, _ := cmd.Flags().GetBool("remote"); remote {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return err
		}

		list, err := client.List(cmd.Context())
		if err != nil {
			return err
		}

		types = list.Types
	}

	w := cmd.OutOrStdout()
	if !isTerminal(w) {
		for _, t := range types {
			fmt.Fprintln(w, t)
		}
		return nil
	}

	table := newTable(w, "TYPE")
	for _, t := range types {
		table.Append([]string{t})
	}
	table.Render()
	return nil
}
