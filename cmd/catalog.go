package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glp360/riskscore/internal/catalog"
	"github.com/glp360/riskscore/internal/visibility"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a catalog file against the schema and the branch rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		if err := checkBranch(c, visibility.DefaultRules()); err != nil {
			return err
		}
		version := c.Version()
		if version == "" {
			version = "unversioned"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions, %s, OK\n", args[0], c.Len(), version)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the questions of the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		rules := visibility.DefaultRules()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-4s  %-6s  %-6s  %-9s  %s\n", "#", "ID", "Type", "Max pts", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for i, q := range c.Questions() {
			prompt := q.Prompt
			if len(prompt) > 56 {
				prompt = prompt[:53] + "..."
			}
			fmt.Fprintf(out, "%-4d  %-6s  %-6s  %-9d  %s%s\n",
				i+1, q.ID, q.Type, maxPoints(q), prompt, visibilityNote(q.ID, rules))
		}

		fmt.Fprintf(out, "\n%d questions\n", c.Len())
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}

// maxPoints returns the most a question can add to the total.
func maxPoints(q catalog.Question) int {
	best := 0
	sum := 0
	for _, o := range q.Options {
		if o.Score > best {
			best = o.Score
		}
		if o.Label != catalog.NoneLabel && o.Score > 0 {
			sum += o.Score
		}
	}
	if q.IsMulti() {
		return sum
	}
	return best
}

func visibilityNote(id string, r visibility.Rules) string {
	switch id {
	case r.BranchLeaf1:
		return fmt.Sprintf("  [only if %s is None]", r.BranchRoot)
	case r.BranchLeaf2:
		return fmt.Sprintf("  [only if %s and %s are None]", r.BranchRoot, r.BranchLeaf1)
	}
	return ""
}

// checkBranch verifies that the branch questions exist, come after the
// always-visible prefix and offer a None option.
func checkBranch(c *catalog.Catalog, r visibility.Rules) error {
	var errs []string
	for _, id := range []string{r.BranchRoot, r.BranchLeaf1, r.BranchLeaf2} {
		q, ok := c.Question(id)
		if !ok {
			errs = append(errs, fmt.Sprintf("branch question %q is missing", id))
			continue
		}
		if c.Index(id) < r.AlwaysVisiblePrefix {
			errs = append(errs, fmt.Sprintf("branch question %q is inside the always-visible prefix", id))
		}
		if !q.IsMulti() {
			errs = append(errs, fmt.Sprintf("branch question %q must be multi-select", id))
		}
		if _, ok := q.NoneOption(); !ok && id != r.BranchLeaf2 {
			errs = append(errs, fmt.Sprintf("branch question %q has no %q option", id, catalog.NoneLabel))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog branch validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
