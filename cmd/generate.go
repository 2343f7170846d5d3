package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question bank without the interactive form",
	Long: `Generate builds the prompt from the flags, calls the model once and
prints the raw pipe-delimited records to stdout (or --out FILE).`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addRequestFlags(generateCmd)
	generateCmd.Flags().String("out", "", "Write the raw response to this file instead of stdout")
	generateCmd.Flags().Bool("check", false, "Print the record contract report to stderr")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req, err := validatedRequest(cmd)
	if err != nil {
		return err
	}

	d, err := buildDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, questionbank.ProgressMessage(req.Counts.Total()))

	res, err := d.gen.Generate(cmd.Context(), req)
	if err != nil {
		return userError(err)
	}

	if res.OutOfScope {
		fmt.Fprintln(stderr, questionbank.MsgOutOfScope)
	}
	if res.Truncated {
		fmt.Fprintln(stderr, questionbank.MsgTruncated)
	}
	if check, _ := cmd.Flags().GetBool("check"); check && res.Report != nil {
		fmt.Fprintln(stderr, res.Report.String())
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := os.WriteFile(out, []byte(res.Text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(stderr, "%s → %s\n", questionbank.MsgSuccess, out)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

// userError pairs the Vietnamese message with the underlying error so the
// terminal shows both.
func userError(err error) error {
	msg := questionbank.UserMessage(err)
	if msg == "" || msg == err.Error() {
		return err
	}
	return fmt.Errorf("%s\n%w", msg, err)
}
