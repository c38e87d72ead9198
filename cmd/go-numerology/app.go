package main

import (
	"cmp"
	"io"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// app carries the state shared by every command: output streams, settings
// and the collaborators tests swap out.
type app struct {
	stdout io.Writer
	stderr io.Writer

	settings config.Settings
	debug    bool
	lang     string
	logFile  bool
	logClose io.Closer

	clock   engine.Clock
	fetcher engine.VCardFetcher
	secrets engine.PasswordStore

	texts  func() *locale.Translator
	corpus func() (*corpus.Corpus, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		logFile: true,
		clock:   engine.RealClock{},
		fetcher: engine.NewHTTPFetcher(),
		secrets: engine.NewKeyringStore(),
		texts:   sync.OnceValue(locale.New),
		corpus:  sync.OnceValues(corpus.Load),
	}
}

func (a *app) close() {
	if a.logClose != nil {
		_ = a.logClose.Close()
		a.logClose = nil
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               config.CmdRoot,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&a.lang, config.FlagLang, "", config.FlagDescLang)

	root.AddCommand(
		a.profileCmd(),
		a.reportCmd(),
		a.compatCmd(),
		a.searchCmd(),
		a.dictionaryCmd(),
		a.calendarCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the settings and installs logging before any command runs.
// serve logs to stdout like a daemon; the other commands keep stdout for
// their output and log to stderr.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == config.CmdVersion {
		return nil
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}
	a.settings = settings

	a.lang = a.texts().Normalize(cmp.Or(a.lang, settings.Language))

	serve := cmd.Name() == config.CmdServe
	console := a.stderr
	level := slog.LevelDebug
	if serve {
		console = a.stdout
		level = slog.LevelInfo
	}

	a.close()
	a.logClose = setupLogging(console, a.debug, settings.LogFormat, a.logFile && serve)
	logStartupInfo(level)
	return nil
}

func (a *app) currentYear() int {
	return engine.CurrentYear(a.clock)
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdDescVersion,
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			printVersion(a.stdout)
		},
	}
}

// personFlags binds the flags describing one person.
type personFlags struct {
	name      string
	birthDate string
	gender    string
}

func (p *personFlags) bind(cmd *cobra.Command, name, date, gender string, descName, descDate, descGender string) {
	f := cmd.Flags()
	f.StringVar(&p.name, name, "", descName)
	f.StringVar(&p.birthDate, date, "", descDate)
	if gender != "" {
		f.StringVar(&p.gender, gender, "", descGender)
	}
	_ = cmd.MarkFlagRequired(name)
	_ = cmd.MarkFlagRequired(date)
}

func (p *personFlags) person(monthFirst, fold bool) (numerology.Person, error) {
	return numerology.ParsePerson(p.name, p.birthDate, p.gender, monthFirst, fold)
}

// parseFlags holds the flags every person-taking command shares.
type parseFlags struct {
	monthFirst bool
	fold       bool
}

func (p *parseFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&p.monthFirst, config.FlagMonthFirst, false, config.FlagDescMonth)
	f.BoolVar(&p.fold, config.FlagFold, false, config.FlagDescFold)
}
