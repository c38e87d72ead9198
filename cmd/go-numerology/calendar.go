package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
)

func (a *app) calendarCmd() *cobra.Command {
	var source, output string

	cmd := &cobra.Command{
		Use:   config.CmdCalendar,
		Short: config.CmdDescCalendar,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.sourceConfig(source)
			if err != nil {
				return err
			}

			ics, _, events, err := a.generator().RunSync(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if output == "" {
				if _, err := a.stdout.Write(ics); err != nil {
					return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
				}
				return nil
			}
			if err := os.WriteFile(output, ics, config.FilePermUserRW); err != nil {
				return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
			}
			_, _ = fmt.Fprintf(a.stdout, config.LabelCalendarSaved+"\n", output, events)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&source, config.FlagSource, "", config.FlagDescSource)
	f.StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutput)
	return cmd
}

func (a *app) generator() *engine.Generator {
	return &engine.Generator{
		Clock:    a.clock,
		Fetcher:  a.fetcher,
		Texts:    a.texts(),
		Language: a.lang,
	}
}

// sourceConfig picks the address book: an explicit --source (URL or file
// path) or the configured one. Web passwords missing from the settings are
// read from the OS keyring.
func (a *app) sourceConfig(source string) (engine.SourceConfig, error) {
	cfg := engine.SourceFromSettings(a.settings)

	switch source = strings.TrimSpace(source); {
	case source == "":
	case strings.HasPrefix(source, config.SchemeHTTP+"://"), strings.HasPrefix(source, config.SchemeHTTPS+"://"):
		if _, _, err := engine.ParseSourceURL(source); err != nil {
			return engine.SourceConfig{}, err
		}
		cfg.Mode = config.SourceModeWeb
		cfg.WebURL = source
	default:
		cfg.Mode = config.SourceModeLocal
		cfg.LocalPath = source
	}

	if cfg.Mode == config.SourceModeWeb {
		cfg = engine.ResolvePassword(cfg, a.secrets)
	}
	return cfg, nil
}
