package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/server"
	"golang.org/x/sync/errgroup"
)

var errPortRange = errors.New(config.ErrPortRange)

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed(config.FlagPort) {
				port = a.settings.Port
			}
			if n, err := strconv.Atoi(port); err != nil || n < config.MinPort || n > config.MaxPort {
				return fmt.Errorf("%w: %q", errPortRange, port)
			}
			return a.serve(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

// serve runs the HTTP server and, when an address book is configured, the
// worker keeping its calendar fresh. Either one failing stops both.
func (a *app) serve(ctx context.Context, port string) error {
	c, err := a.corpus()
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		BindAddr:    a.settings.BindAddr,
		Port:        port,
		Corpus:      c,
		Texts:       a.texts(),
		Clock:       a.clock,
		Language:    a.lang,
		CacheTTL:    a.settings.CacheTTL,
		CORSOrigins: a.settings.CORSOrigins,
	})
	if err != nil {
		return err
	}

	var refresher *server.Refresher
	if a.settings.HasCalendarSource() {
		cfg, err := a.sourceConfig("")
		if err != nil {
			return err
		}
		refresher = &server.Refresher{
			Server:   srv,
			Syncer:   a.generator(),
			Source:   cfg,
			Interval: a.settings.Refresh,
		}
	} else {
		srv.UpdateCalendar([]byte(config.StubVCalendar))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	if refresher != nil {
		g.Go(func() error {
			return refresher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}
