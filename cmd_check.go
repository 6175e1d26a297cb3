package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"govscheme/internal/checkclient"
	"govscheme/internal/config"
	"govscheme/internal/controller"
	"govscheme/internal/models"
	"govscheme/internal/render"
	"govscheme/internal/report"
	"govscheme/internal/share"

	"github.com/spf13/cobra"
)

var (
	checkAge        int
	checkIncome     int
	checkState      string
	checkOccupation string
	checkGender     string
	checkEducation  string
	checkSearch     string
	checkType       string
	checkShare      bool
	checkReport     bool
	checkExpand     bool
)

// shareClipboard is swapped in tests.
var shareClipboard share.Clipboard = share.SystemClipboard{}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one eligibility check and print the results",
	Example: `  govscheme check --age 65 --income 100000 --state Kerala \
    --occupation Retired --gender Male --education Graduate --type Central`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := map[string]string{
			"age":        strconv.Itoa(checkAge),
			"income":     strconv.Itoa(checkIncome),
			"state":      checkState,
			"occupation": checkOccupation,
			"gender":     checkGender,
			"education":  checkEducation,
		}
		profile, problem, ok := models.ParseProfile(func(f string) string { return values[f] })
		if !ok {
			return errors.New(problem)
		}

		ctrl := newController()
		if err := ctrl.Submit(cmd.Context(), profile); err != nil {
			return errors.New(checkclient.UserMessage(err))
		}
		ctrl.SetSearch(checkSearch)
		v := ctrl.SetFilter(checkType)

		out := cmd.OutOrStdout()
		printView(out, v, checkExpand)

		if checkShare {
			text, err := ctrl.Share(shareClipboard)
			switch {
			case errors.Is(err, share.ErrEmptyShare):
				fmt.Fprintln(out, share.EmptyNotice)
			case err != nil:
				// no clipboard (headless); print the text instead
				fmt.Fprintf(out, "\n%s\n", text)
			default:
				fmt.Fprintln(out, "\nCopied!")
			}
		}

		if checkReport {
			path, err := report.WriteFile(config.Cfg.ReportDir, ctrl.Results(), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved report to %s\n", path)
		}
		return nil
	},
}

func printView(w io.Writer, v controller.View, expand bool) {
	fmt.Fprintf(w, "Eligible (%d)  [search=%q type=%s]\n", len(v.Eligible), v.Search, v.Filter)
	if len(v.Eligible) == 0 {
		fmt.Fprintf(w, "  %s\n", render.NoResultsText)
	}
	for _, s := range v.Eligible {
		fmt.Fprintf(w, "  * %s [%s]\n", s.Name, s.Type)
		if s.Description != "" {
			fmt.Fprintf(w, "    %s\n", s.Description)
		}
		for _, r := range s.WhyEligible {
			fmt.Fprintf(w, "    ✓ %s\n", r)
		}
		fmt.Fprintf(w, "    Apply now: %s\n", s.ApplyLink)
	}

	fmt.Fprintf(w, "\nNot eligible (%d)\n", len(v.NotEligible))
	for _, s := range v.NotEligible {
		fmt.Fprintf(w, "  - %s [%s]\n", s.Name, s.Type)
		if !expand {
			continue
		}
		fmt.Fprintf(w, "    Requirement Gaps: %s\n", strings.Join(s.WhyNot, "; "))
	}
}

func init() {
	f := checkCmd.Flags()
	f.IntVar(&checkAge, "age", 0, "age in years")
	f.IntVar(&checkIncome, "income", 0, "annual income in rupees")
	f.StringVar(&checkState, "state", "", "state of residence")
	f.StringVar(&checkOccupation, "occupation", "", "occupation")
	f.StringVar(&checkGender, "gender", "", "gender")
	f.StringVar(&checkEducation, "education", "", "education level ("+strings.Join(models.EducationLevels, ", ")+")")
	f.StringVar(&checkSearch, "search", "", "only show schemes whose name contains this text")
	f.StringVar(&checkType, "type", models.FilterAll, "scheme type filter ("+strings.Join(models.FilterTypes, ", ")+")")
	f.BoolVar(&checkShare, "share", false, "copy a share summary to the clipboard")
	f.BoolVar(&checkReport, "report", false, "export a PDF report to the report directory")
	f.BoolVar(&checkExpand, "why-not", false, "list the requirement gaps of not-eligible schemes")
}
