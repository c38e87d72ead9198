package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/search"
)

var errPosition = errors.New(config.ErrSearchPosition)

type searchOutput struct {
	Session  string          `json:"session"`
	Words    int             `json:"words"`
	Checked  int             `json:"checked"`
	Complete bool            `json:"complete"`
	Results  []search.Result `json:"results"`
}

func (a *app) searchCmd() *cobra.Command {
	var (
		fixed, stable personFlags
		parse         parseFlags
		position      string
		mode          int
		languages     []string
		buckets       bool
		criteria      = search.DefaultCriteria()
		hara          string
		limit         int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdSearch,
		Short: config.CmdDescSearch,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if position != config.PositionFirst && position != config.PositionSecond {
				return fmt.Errorf("%w: %q", errPosition, position)
			}
			fp, err := fixed.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}
			sp, err := stable.person(parse.monthFirst, parse.fold)
			if err != nil {
				return err
			}
			c, err := a.corpus()
			if err != nil {
				return err
			}

			year := a.currentYear()
			criteria.Hara = search.ParseHara(hara)
			req := search.Request{
				Stable:    sp,
				Fixed:     fp,
				FixFirst:  position == config.PositionFirst,
				Mode:      search.Mode(mode),
				Languages: languages,
				Criteria:  criteria,
			}
			if buckets {
				req.Buckets = search.SuggestedBuckets(c, numerology.Derive(fp, year), req.Mode)
			}

			session, err := search.NewSession(c, req,
				search.WithCurrentYear(year),
				search.WithLimit(limit),
			)
			if err != nil {
				return err
			}

			// Ctrl-C stops the search and keeps what was found.
			results, err := session.Run(cmd.Context())
			complete := err == nil
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			out := searchOutput{
				Session:  session.ID,
				Words:    session.Words(),
				Checked:  session.Checked(),
				Complete: complete,
				Results:  results,
			}
			if out.Results == nil {
				out.Results = []search.Result{}
			}
			if asJSON {
				return writeJSON(a.stdout, out)
			}
			printSearch(a.stdout, out)
			return nil
		},
	}

	fixed.bind(cmd, config.FlagName, config.FlagBirthdate, "",
		config.FlagDescName, config.FlagDescDate, "")
	stable.bind(cmd, config.FlagStableName, config.FlagStableDate, "",
		config.FlagDescStable, config.FlagDescStDate, "")
	parse.bind(cmd)

	f := cmd.Flags()
	f.StringVar(&position, config.FlagPosition, config.PositionFirst, config.FlagDescPos)
	f.IntVar(&mode, config.FlagMode, int(search.OneWord), config.FlagDescMode)
	f.StringSliceVar(&languages, config.FlagLanguages, []string{config.DefaultCorpus}, config.FlagDescLangs)
	f.BoolVar(&buckets, config.FlagBuckets, false, config.FlagDescBuckets)
	f.Float64Var(&criteria.Harmony, config.FlagHarmony, criteria.Harmony, config.FlagDescHarmony)
	f.StringVar(&hara, config.FlagHara, config.HaraAll, config.FlagDescHara)
	f.IntVar(&criteria.Coherence, config.FlagCoherence, criteria.Coherence, config.FlagDescCoh)
	f.Float64Var(&criteria.Momen, config.FlagMomen, criteria.Momen, config.FlagDescMomen)
	f.IntVar(&criteria.Suggestion, config.FlagSuggestion, 0, config.FlagDescSugg)
	f.IntVar(&limit, config.FlagLimit, config.MaxSearchResults, config.FlagDescLimit)
	f.BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

func printSearch(out io.Writer, res searchOutput) {
	if len(res.Results) > 0 {
		w := newTable(out)
		_, _ = fmt.Fprintln(w, config.HeaderSearch)
		for _, r := range res.Results {
			row(w, r.Name, fmt.Sprintf("%.2f", r.Harmony), r.Hara, r.Synchronize, r.Coherence,
				r.MomenSukses, r.GrafologiIndex, fmt.Sprint(r.Suggestions))
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(out)
	}

	if !res.Complete {
		_, _ = fmt.Fprintln(out, config.LabelIncomplete)
	}
	_, _ = fmt.Fprintf(out, config.LabelChecked+"\n", res.Checked, res.Words, len(res.Results))
}
