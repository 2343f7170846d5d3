package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that would be sent, without calling the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := validatedRequest(cmd)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), questionbank.BuildPrompt(req))
		return nil
	},
}

func init() {
	addRequestFlags(promptCmd)
}
