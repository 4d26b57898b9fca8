package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-qlist/logger"
	"github.com/arloliu/go-qlist/qtest"
)

type flags struct {
	file        string
	verbose     int
	echo        bool
	verify      bool
	seed        uint64
	timeLimit   time.Duration
	failPercent int
	errorLimit  int
	length      int
	logLevel    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "qtest",
		Short:         "Interactive tester for the string queue",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "read commands from file instead of stdin")
	fs.IntVarP(&f.verbose, "verbose", "v", qtest.DefaultVerbose, "verbosity level")
	fs.BoolVarP(&f.echo, "echo", "e", false, "echo commands before running them")
	fs.BoolVar(&f.verify, "verify", false, "check every queue against the reference model")
	fs.Uint64Var(&f.seed, "seed", uint64(time.Now().UnixNano()), "seed for random values and allocation failures") //nolint:gosec
	fs.DurationVar(&f.timeLimit, "time-limit", qtest.DefaultTimeLimit, "time limit per queue operation, 0 disables it")
	fs.IntVar(&f.failPercent, "fail-percent", 0, "probability in percent of an allocation failure")
	fs.IntVar(&f.errorLimit, "error-limit", qtest.DefaultErrorLimit, "number of errors before stopping")
	fs.IntVar(&f.length, "length", qtest.DefaultStringLength, "maximum length of removed and shown values")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	level, err := parseLevel(f.logLevel)
	if err != nil {
		return err
	}
	log := logger.NewSlog(level, false)
	logger.SetLogger(log)

	it, err := qtest.New(cmd.OutOrStdout(),
		qtest.WithVerbose(f.verbose),
		qtest.WithEcho(f.echo || f.file != ""),
		qtest.WithVerify(f.verify),
		qtest.WithSeed(f.seed),
		qtest.WithTimeLimit(f.timeLimit),
		qtest.WithFailPercent(f.failPercent),
		qtest.WithErrorLimit(f.errorLimit),
		qtest.WithStringLength(f.length),
		qtest.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return fmt.Errorf("open command file: %w", err)
		}
		defer file.Close()
		in = file
	}

	if err := it.Run(in); err != nil {
		log.Error("qtest failed", "error", err)
		return err
	}

	return nil
}

func parseLevel(s string) (logger.Level, error) {
	switch s {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "warn":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}

	return logger.ErrorLevel, fmt.Errorf("unknown log level %q", s)
}
