package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qbank-ai/qbank/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "qbank",
	Short: "AI question-bank generator",
	Long: `qbank generates Vietnamese question banks (GDPT 2018) with a hosted LLM.

Fill in subject, grade, topic, textbook edition and the number of questions
per type; qbank builds the prompt, calls the model once and shows the raw
22-column pipe-delimited records.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version, _ = buildVersion()
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./qbank.yaml if present)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, openrouter, anthropic, mock")
	rootCmd.PersistentFlags().String("model", "", "Model name or alias (e.g. gemini-flash, gemini-pro)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// runTUI resolves dependencies and launches the terminal form. Logs go to
// the configured file only.
func runTUI(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Generator: d.gen,
		Model:     d.provider.ModelID(),
	})
}
