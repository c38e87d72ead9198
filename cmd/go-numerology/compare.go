package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
)

func (a *app) compatCmd() *cobra.Command {
	var (
		first, second personFlags
		parse         parseFlags
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdCompat,
		Short: config.CmdDescCompat,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p1, err := first.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}
			p2, err := second.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}

			rep := compat.Compare(p1, p2, a.currentYear())
			rep.Match.Narrate(a.texts(), a.lang)
			if asJSON {
				return writeJSON(a.stdout, rep)
			}
			printCompat(a.stdout, rep)
			return nil
		},
	}

	// Person 1 is scored as the man and person 2 as the woman, so there is
	// no gender flag.
	first.bind(cmd, config.FlagName, config.FlagBirthdate, "",
		config.FlagDescName, config.FlagDescDate, "")
	second.bind(cmd, config.FlagName2, config.FlagBirthdate2, "",
		config.FlagDescName2, config.FlagDescDate2, "")
	parse.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func printCompat(out io.Writer, rep compat.Report) {
	_, _ = fmt.Fprintf(out, "%s + %s\n\n", rep.Person1.Name, rep.Person2.Name)

	w := newTable(out)
	_, _ = fmt.Fprintln(w, config.HeaderTerms)
	for _, t := range rep.Harmony.Terms {
		row(w, t.Label, t.A, t.B, t.Value, t.Weight, fmt.Sprintf("%.2f", t.Weighted))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%s: %.2f\n", config.LabelHarmony, rep.Harmony.Total)
	_, _ = fmt.Fprintln(out, matchLine(rep.Match))
	if rep.Match.Narrative != "" {
		_, _ = fmt.Fprintln(out, rep.Match.Narrative)
	}
	_, _ = fmt.Fprintf(out, "\n%s: %s\n%s: %s\n",
		config.LabelBestYears, years(rep.Highest),
		config.LabelHardYears, years(rep.Lowest),
	)
}

// matchLine tags ratings that do not come from the curated table.
func matchLine(m compat.Match) string {
	line := fmt.Sprintf("%s: %d/%d %s", config.LabelMatch, m.TimeA, m.TimeB, m.Percentage)
	if m.Kind != compat.MatchCurated {
		line += fmt.Sprintf(" (%s)", m.Kind)
	}
	return line
}
