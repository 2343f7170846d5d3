package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

// countFlags maps each count flag to its position in questionbank.CountKinds.
var countFlags = []string{"single", "truefalse", "fill", "drag", "cluster", "essay"}

// addRequestFlags registers the request fields on cmd, defaulting to
// questionbank.DefaultRequest.
func addRequestFlags(cmd *cobra.Command) {
	def := questionbank.DefaultRequest()
	values := def.Counts.Slice()

	f := cmd.Flags()
	f.String("subject", def.Subject, "Subject (môn học)")
	f.String("grade", def.Grade, "Grade (lớp)")
	f.String("topic", def.Topic, "Topic (chủ đề)")
	f.String("edition", "kntt", "Textbook edition: kntt, ctst, cd or the full name")
	for i, name := range countFlags {
		k := questionbank.CountKinds[i]
		f.Int(name, values[i], fmt.Sprintf("Number of %q questions (0-%d)", k.Label, k.Max))
	}
}

// requestFromFlags reads the request. Only an unknown --edition fails
// here; field checks are left to questionbank.ValidateAll so every error
// is reported at once.
func requestFromFlags(cmd *cobra.Command) (questionbank.Request, error) {
	f := cmd.Flags()
	subject, _ := f.GetString("subject")
	grade, _ := f.GetString("grade")
	topic, _ := f.GetString("topic")
	editionFlag, _ := f.GetString("edition")

	edition, err := questionbank.ParseEdition(editionFlag)
	if err != nil {
		return questionbank.Request{}, err
	}

	values := make([]int, len(countFlags))
	for i, name := range countFlags {
		values[i], _ = f.GetInt(name)
	}

	return questionbank.Request{
		Subject: subject,
		Grade:   grade,
		Topic:   topic,
		Edition: edition,
		Counts:  questionbank.CountsFromSlice(values),
	}, nil
}

// validatedRequest reads the request flags and checks them against the
// configured limits before any credential or provider work.
func validatedRequest(cmd *cobra.Command) (questionbank.Request, error) {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return req, userError(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return req, err
	}
	limits := questionbank.Limits{MinTotal: cfg.Limits.MinTotal, MaxTotal: cfg.Limits.MaxTotal}
	if errs := questionbank.ValidateAll(req, limits); errs != nil {
		return req, userError(errs)
	}
	return req, nil
}
