package main

import (
	"flag"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/shell"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dbDir      = flag.String("db", "", "game archive directory (default: platform data dir, env CHESSRULES_DB)")
	noDB       = flag.Bool("nodb", false, "run without a game archive")
	startFEN   = flag.String("fen", "", "start from this position instead of the initial one")
	logFile    = flag.String("log", "", "append logs to this file instead of stderr")
	logLevel   = flag.String("level", "info", "log level (trace, debug, info, warn, error)")
)

func main() {
	flag.Parse()

	logger, closeLog := newLogger(*logFile, *logLevel)
	defer closeLog()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", profilePath).Msg("CPU profiling enabled")
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sh := shell.New(os.Stdin, os.Stdout, store, logger)
	if *startFEN != "" {
		if err := sh.SetPosition(*startFEN); err != nil {
			logger.Fatal().Err(err).Msg("invalid start position")
		}
	}

	if err := sh.Run(); err != nil {
		logger.Error().Err(err).Msg("reading commands")
	}
}

// openStore opens the game archive. The shell still works without one, so
// failures are logged rather than fatal.
func openStore(logger zerolog.Logger) *storage.Storage {
	if *noDB {
		return nil
	}

	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("CHESSRULES_DB")
	}

	var (
		store *storage.Storage
		err   error
	)
	if dir != "" {
		store, err = storage.Open(dir, logger)
	} else {
		store, err = storage.NewStorage(logger)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("game archive unavailable")
		return nil
	}
	return store
}

// newLogger builds the process logger. Console output goes to stderr so it
// never mixes with command output on stdout.
func newLogger(dest, level string) (zerolog.Logger, func()) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	closer := func() {}
	if dest != "" {
		f, ferr := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if ferr == nil {
			w = f
			closer = func() { f.Close() }
		} else {
			err = ferr
		}
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if err != nil {
		logger.Warn().Err(err).Msg("logger setup")
	}
	return logger, closer
}
