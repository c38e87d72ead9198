package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
)

var errUnknownOrigin = errors.New(config.ErrUnknownOrigin)

func (a *app) dictionaryCmd() *cobra.Command {
	var (
		origin string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   config.CmdUseDictionary,
		Short: config.CmdDescDictionary,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c, err := a.corpus()
			if err != nil {
				return err
			}
			dict := c.Dictionary()

			origin = strings.TrimSpace(origin)
			if origin != "" && !dict.HasOrigin(origin) {
				return fmt.Errorf("%w: %q (%s)", errUnknownOrigin, origin, strings.Join(dict.Origins(), ", "))
			}

			var query string
			if len(args) > 0 {
				query = args[0]
			}
			entries := dict.Search(query, origin, limit)
			if entries == nil {
				entries = []corpus.Entry{}
			}
			if asJSON {
				return writeJSON(a.stdout, entries)
			}

			w := newTable(a.stdout)
			_, _ = fmt.Fprintln(w, config.HeaderDictionary)
			for _, e := range entries {
				row(w, e.Name, e.Origin, e.Meaning)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVar(&origin, config.FlagOrigin, "", config.FlagDescOrigin)
	f.IntVar(&limit, config.FlagLimit, config.DictionaryLimit, config.FlagDescLimit)
	f.BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}
