package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/glp360/riskscore/internal/answers"
	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/report"
	"github.com/glp360/riskscore/internal/scoring"
	"github.com/glp360/riskscore/internal/submit"
	"github.com/glp360/riskscore/internal/wizard"
)

var scoreCmd = &cobra.Command{
	Use:   "score <answers-file>",
	Short: "Score an answers file without the interactive wizard",
	Long: `Score reads answers from a JSON or YAML file ("-" for stdin) mapping
question IDs to an option ID or a list of option IDs:

  q1: q1_c
  q8: [q8_a, q8_d]
  q12: q12_d

Answers to questions that end up hidden are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringP("output", "o", "markdown", "Output format: markdown or json")
	scoreCmd.Flags().String("style", "", "Markdown style: dark, light, notty or a glamour style file (default: auto)")
	scoreCmd.Flags().Bool("submit", false, "Forward the result to the configured webhook")
	scoreCmd.Flags().String("name", "", "Respondent name (required with --submit)")
	scoreCmd.Flags().String("phone", "", "Respondent phone number (required with --submit)")
	scoreCmd.Flags().Bool("no-contact", false, "Do not request a follow-up call")
}

// scoreOutput is the JSON form of a scored answers file.
type scoreOutput struct {
	Result      scoring.Result      `json:"result"`
	Category    string              `json:"categoryLabel"`
	Explanation scoring.Explanation `json:"explanation"`
	Plan        []scoring.PlanStep  `json:"plan"`
	Pruned      []string            `json:"pruned,omitempty"`
	Submission  string              `json:"submissionId,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if format != "markdown" && format != "json" {
		return fmt.Errorf("unknown output format %q", format)
	}
	doSubmit, _ := cmd.Flags().GetBool("submit")
	name, _ := cmd.Flags().GetString("name")
	phone, _ := cmd.Flags().GetString("phone")
	noContact, _ := cmd.Flags().GetBool("no-contact")

	contact := wizard.Contact{Name: name, Phone: phone, ContactRequested: !noContact}
	if doSubmit && !contact.Complete() {
		return errors.New("--submit needs --name and --phone")
	}
	contact = contact.Trimmed()

	a, err := readAnswers(args[0])
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		outcome *submit.Outcome
	)
	rt, err := newRuntime(func(o submit.Outcome) {
		mu.Lock()
		outcome = &o
		mu.Unlock()
	})
	if err != nil {
		return err
	}

	c := rt.engine.Catalog()
	warnUnknown(c, a)
	pruned := rt.rules.Prune(a, c)
	result := rt.engine.Evaluate(a)

	var submissionID string
	if doSubmit {
		submissionID, err = rt.dispatcher.Submit(submit.BuildPayload(c, a, contact, result, time.Now()))
		if err != nil {
			rt.close()
			return fmt.Errorf("submit: %w", err)
		}
	}
	// Wait for the delivery before reporting.
	rt.close()

	out := cmd.OutOrStdout()
	if format == "json" {
		page := report.NewPage(result, contact)
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(scoreOutput{
			Result:      result,
			Category:    result.FinalCategory.Label(),
			Explanation: page.Explanation,
			Plan:        page.Plan,
			Pruned:      pruned,
			Submission:  submissionID,
		}); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	} else {
		style, _ := cmd.Flags().GetString("style")
		r, err := report.NewRenderer(style, report.DefaultWordWrap)
		if err != nil {
			return err
		}
		text, err := r.Render(report.NewPage(result, contact), doSubmit && outcome != nil && outcome.Delivered())
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	}

	if doSubmit && outcome != nil && !outcome.Delivered() {
		reason := "not forwarded"
		if outcome.Err != nil {
			reason = outcome.Err.Error()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Submission %s was not delivered: %s\n", outcome.SubmissionID, reason)
	}
	return nil
}

// readAnswers decodes an answers file. The format follows the extension;
// stdin is read as YAML, which also accepts JSON.
func readAnswers(path string) (answers.Set, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	a := answers.New()
	if path != "-" && catalog.FormatForPath(path) == catalog.FormatJSON {
		err = json.Unmarshal(data, &a)
	} else {
		err = yaml.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}
	if a == nil {
		a = answers.New()
	}
	return a, nil
}

// warnUnknown logs answers that do not resolve against the catalog; the
// engine scores them as zero.
func warnUnknown(c *catalog.Catalog, a answers.Set) {
	for qid, sel := range a {
		q, ok := c.Question(qid)
		if !ok {
			logger.Warn("answer for unknown question", zap.String("question", qid))
			continue
		}
		for _, oid := range sel {
			if _, ok := q.Option(oid); !ok {
				logger.Warn("unknown option", zap.String("question", qid), zap.String("option", oid))
			}
		}
	}
}
