package records

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Rule names a record constraint.
type Rule string

const (
	RuleFieldCount   Rule = "field_count"
	RuleSequence     Rule = "sequence"
	RuleType         Rule = "type"
	RuleDifficulty   Rule = "difficulty"
	RuleCognitive    Rule = "cognitive_level"
	RuleChildFlag    Rule = "cluster_child_flag"
	RuleClusterStem  Rule = "cluster_stem"
	RuleClusterChild Rule = "cluster_child"
	RuleAnswer       Rule = "answer"
	RulePlaceholder  Rule = "placeholder"
	RuleEmptyField   Rule = "empty_field"
)

// Violation is one broken constraint on one line.
type Violation struct {
	Line    int
	Rule    Rule
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("line %d: %s: %s", v.Line, v.Rule, v.Message)
}

var placeholderRe = regexp.MustCompile(`\{[a-z]\}`)

// Check validates records against the record contract and returns every
// violation found, in line order.
func Check(recs []Record) []Violation {
	var out []Violation
	add := func(r Record, rule Rule, format string, args ...any) {
		out = append(out, Violation{Line: r.Line, Rule: rule, Message: fmt.Sprintf(format, args...)})
	}

	prevSeq := 0
	inCluster := false
	pendingStem := -1

	for idx, r := range recs {
		seq, err := r.Seq()
		switch {
		case err != nil || seq <= 0:
			add(r, RuleSequence, "sequence number %q is not a positive integer", r.Field(FieldSeq))
		case seq <= prevSeq:
			add(r, RuleSequence, "sequence number %d does not increase (previous %d)", seq, prevSeq)
		}
		if err == nil && seq > prevSeq {
			prevSeq = seq
		}

		typ := r.Type()
		if !slices.Contains(QuestionTypes, typ) {
			add(r, RuleType, "unknown question type %q", typ)
		}
		if d := r.Field(FieldDifficulty); !slices.Contains(Difficulties, d) {
			add(r, RuleDifficulty, "unknown difficulty %q", d)
		}
		if c := r.CognitiveLevel(); !slices.Contains(CognitiveLevels, c) {
			add(r, RuleCognitive, "unknown cognitive level %q", r.Field(FieldCognitive))
		}

		flag := r.Field(FieldClusterChild)
		if flag != Yes && flag != No {
			add(r, RuleChildFlag, "cluster-child flag must be %q or %q, got %q", Yes, No, flag)
		}

		for _, i := range []int{FieldTags, FieldExplanation} {
			if r.Field(i) != "" {
				add(r, RuleEmptyField, "column %d (%s) must be empty", i+1, Columns[i])
			}
		}

		if typ == TypeClusterStem && flag == Yes && inCluster {
			add(r, RuleClusterChild, "cluster child must carry its real question type, not %q", TypeClusterStem)
			pendingStem = -1
			continue
		}

		if typ == TypeClusterStem {
			if pendingStem >= 0 {
				add(recs[pendingStem], RuleClusterStem, "cluster stem has no child questions")
			}
			if flag != No {
				add(r, RuleClusterStem, "cluster stem must have cluster-child flag %q", No)
			}
			for i := FieldCorrect; i <= FieldExplanation; i++ {
				if r.Field(i) != "" {
					add(r, RuleClusterStem, "cluster stem column %d (%s) must be empty", i+1, Columns[i])
					break
				}
			}
			inCluster = true
			pendingStem = idx
			continue
		}

		if r.IsClusterChild() {
			if !inCluster {
				add(r, RuleClusterChild, "cluster child does not follow a cluster stem")
			}
			pendingStem = -1
		} else {
			inCluster = false
			if pendingStem >= 0 {
				add(recs[pendingStem], RuleClusterStem, "cluster stem has no child questions")
				pendingStem = -1
			}
		}

		checkAnswer(r, typ, add)
	}

	if pendingStem >= 0 {
		add(recs[pendingStem], RuleClusterStem, "cluster stem has no child questions")
	}

	sortViolations(out)
	return out
}

func sortViolations(v []Violation) {
	sort.SliceStable(v, func(i, j int) bool { return v[i].Line < v[j].Line })
}

func checkAnswer(r Record, typ QuestionType, add func(Record, Rule, string, ...any)) {
	correct := r.Field(FieldCorrect)
	opts := r.Options()

	switch typ {
	case TypeSingleChoice:
		n, err := strconv.Atoi(correct)
		if err != nil || n < 1 || n > len(opts) {
			add(r, RuleAnswer, "correct answer %q is not an option index", correct)
			return
		}
		if opts[n-1] == "" {
			add(r, RuleAnswer, "correct answer %d points at an empty option", n)
		}

	case TypeTrueFalse:
		if correct != "1" && correct != "2" {
			add(r, RuleAnswer, "true/false answer must be 1 or 2, got %q", correct)
		}
		if opts[0] != "Đúng" || opts[1] != "Sai" {
			add(r, RuleAnswer, "true/false options must be %q and %q", "Đúng", "Sai")
		}

	case TypeFillBlank, TypeDragDrop:
		blanks := placeholderRe.FindAllString(r.Field(FieldBody), -1)
		if len(blanks) == 0 {
			add(r, RulePlaceholder, "%s question has no {a}-style placeholder", typ)
			return
		}
		answers := splitList(correct)
		if len(answers) != len(blanks) {
			add(r, RulePlaceholder, "%d placeholders but %d correct-answer entries", len(blanks), len(answers))
		}
		for i := range blanks {
			if i >= len(opts) || opts[i] == "" {
				add(r, RulePlaceholder, "no options for placeholder %s", blanks[i])
			}
		}

	case TypeFreeResponse:
		if correct != "" {
			add(r, RuleAnswer, "free-response question must leave the correct answer empty")
		}
		for i, o := range opts {
			if o != "" {
				add(r, RuleAnswer, "free-response question must leave option %d empty", i+1)
				break
			}
		}
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
