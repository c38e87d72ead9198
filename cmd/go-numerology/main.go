package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/tartampluch/go-numerology/internal/config"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := newApp(os.Stdout, os.Stderr)
	defer a.close()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

func logStartupInfo(level slog.Level) {
	slog.Log(context.Background(), level, config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default logger. Records go to console and to
// a log file in the user cache dir. The console gets colored text on a
// terminal and JSON otherwise, unless format forces one of them. The file
// always gets JSON.
func setupLogging(console io.Writer, debug bool, format string, withFile bool) io.Closer {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: debug}

	var handlers []slog.Handler
	if useText(console, format) {
		handlers = append(handlers, tint.NewHandler(console, &tint.Options{
			Level:      level,
			AddSource:  debug,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(console),
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if err, ok := a.Value.Any().(error); ok && a.Key == config.LogKeyError {
					return slog.Attr{Key: a.Key, Value: tint.Err(err).Value}
				}
				return a
			},
		}))
	} else {
		handlers = append(handlers, slog.NewJSONHandler(console, opts))
	}

	var logFile *os.File
	if withFile {
		if logPath, err := getLogFilePath(); err == nil {
			// Truncated on every start so the file cannot grow forever.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				handlers = append(handlers, slog.NewJSONHandler(f, opts))
				logFile = f
			} else {
				_, _ = fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	slog.SetDefault(slog.New(fanout(handlers)))

	if logFile == nil {
		return nil
	}
	return logFile
}

func useText(w io.Writer, format string) bool {
	switch format {
	case config.LogFormatJSON:
		return false
	case config.LogFormatText:
		return true
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// getLogFilePath returns the log file path in the user cache dir, creating
// the app directory when needed.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
