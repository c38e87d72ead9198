package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/compat"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

var errAgeRange = errors.New(config.ErrAgeRange)

func (a *app) profileCmd() *cobra.Command {
	var (
		who    personFlags
		parse  parseFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdProfile,
		Short: config.CmdDescProfile,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			p, err := who.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}
			prof := numerology.Derive(p, a.currentYear())
			if asJSON {
				return writeJSON(a.stdout, prof)
			}
			a.printProfile(a.stdout, p, prof)
			return nil
		},
	}

	who.bind(cmd, config.FlagName, config.FlagBirthdate, config.FlagGender,
		config.FlagDescName, config.FlagDescDate, config.FlagDescGender)
	parse.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func (a *app) printProfile(out io.Writer, p numerology.Person, prof numerology.Profile) {
	w := newTable(out)
	row(w, config.LabelName, prof.Name)
	row(w, config.LabelBirthDate, engine.FormatDate(p.Birth.Time(), a.lang))
	row(w, config.LabelGender, prof.Gender)
	row(w, config.LabelExpression, prof.Expression)
	row(w, config.LabelTime, prof.Time)
	row(w, config.LabelHeart, prof.HeartDesire)
	row(w, config.LabelPersonality, prof.Personality)
	row(w, config.LabelBirth, prof.Birth)
	row(w, config.LabelUltimate, prof.Ultimate)
	row(w, config.LabelHabit, prof.Habit)
	row(w, config.LabelPlanes, fmt.Sprintf("%d/%d/%d/%d",
		prof.Planes.Physical, prof.Planes.Mental, prof.Planes.Emotion, prof.Planes.Intuition))
	row(w, config.LabelPlanExp, prof.PlanOfExpression)
	row(w, config.LabelIntensity, prof.PointOfIntensification)
	row(w, config.LabelHara, prof.Hara)
	row(w, config.LabelSynchronize, prof.Synchronize)
	row(w, config.LabelCoherence, prof.Coherence)
	row(w, config.LabelSynergize, prof.Synergize)
	row(w, config.LabelProductive, prof.Productive)
	row(w, config.LabelMomen, prof.MomenSukses)
	row(w, config.LabelGrafologi, prof.GrafologiIndex)
	row(w, config.LabelMaturity, prof.Maturity)
	row(w, config.LabelBalance, prof.Balance)
	row(w, config.LabelChallenges, fmt.Sprintf("%d %d %d %d",
		prof.Challenges[0], prof.Challenges[1], prof.Challenges[2], prof.Challenges[3]))
	row(w, config.LabelPersonalYear, prof.PersonalYear)
	row(w, config.LabelLifeLine, prof.LifeLine)
	_ = w.Flush()

	if len(prof.Grafologi.Suggestions) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "\n%s:\n", config.LabelSuggestions)
	texts := a.texts()
	for _, s := range prof.Grafologi.Suggestions {
		key := fmt.Sprintf("%s%d", config.TKeySuggestion, s.Value)
		_, _ = fmt.Fprintf(out, "  %2d  %s\n", s.Value, texts.Text(a.lang, key, nil))
	}
}

func (a *app) reportCmd() *cobra.Command {
	var (
		who      personFlags
		parse    parseFlags
		from, to int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdReport,
		Short: config.CmdDescReport,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if from < 0 || to > config.DefaultReportTo || from > to {
				return fmt.Errorf("%w: %s=%d %s=%d", errAgeRange, config.FlagFrom, from, config.FlagTo, to)
			}
			p, err := who.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}

			rep := compat.NewLifeReport(p, a.currentYear())
			rep.Rows = rep.Rows[from : to+1]
			rep.Scores = rep.Scores[from : to+1]
			if asJSON {
				return writeJSON(a.stdout, rep)
			}
			a.printReport(a.stdout, p, rep)
			return nil
		},
	}

	who.bind(cmd, config.FlagName, config.FlagBirthdate, config.FlagGender,
		config.FlagDescName, config.FlagDescDate, config.FlagDescGender)
	parse.bind(cmd)
	f := cmd.Flags()
	f.IntVar(&from, config.FlagFrom, 0, config.FlagDescFrom)
	f.IntVar(&to, config.FlagTo, config.DefaultReportTo, config.FlagDescTo)
	f.BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func (a *app) printReport(out io.Writer, p numerology.Person, rep compat.LifeReport) {
	_, _ = fmt.Fprintf(out, config.HeaderPeople+"\n\n", rep.Profile.Name, engine.FormatDate(p.Birth.Time(), a.lang))

	w := newTable(out)
	_, _ = fmt.Fprintln(w, config.HeaderReport)
	for i, r := range rep.Rows {
		row(w, r.Year, r.Age, r.Challenge, r.Cycle, r.Pinnacle, r.CalYear, r.PersonalYear, r.Essence,
			fmt.Sprintf("%.2f", rep.Scores[i].Value))
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%s: %s\n%s: %s\n",
		config.LabelBestYears, years(rep.Highest),
		config.LabelHardYears, years(rep.Lowest),
	)
}
