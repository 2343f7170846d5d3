package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qbank-ai/qbank/internal/records"
)

var errCheckFailed = errors.New("records do not match the 22-column format")

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check a saved response against the 22-column record format",
	Long:  "Check parses a saved model response (or stdin when FILE is -) and lists every record that breaks the format.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}

		report := records.Analyze(text)
		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		if !report.OK() {
			return errCheckFailed
		}
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
