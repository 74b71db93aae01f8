// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/navwar/gomirror/pkg/eventlog"
	"github.com/navwar/gomirror/pkg/history"
	"github.com/navwar/gomirror/pkg/lfs"
	"github.com/navwar/gomirror/pkg/log"
	"github.com/navwar/gomirror/pkg/mirror"
	"github.com/navwar/gomirror/pkg/schedule"
	"github.com/navwar/gomirror/pkg/ts"
)

const (
	GoMirrorVersion = "0.0.1"
)

const (
	EnvPrefix = "GOMIRROR"
)

// Debug Flag
const (
	flagDebug = "debug"
)

// Config Flag
const (
	flagConfig = "config"
)

// Mirror Flags
const (
	flagLogDirectory = "log-directory"
	flagInterval     = "interval"
	flagParents      = "parents"
	flagHistoryDB    = "history-db"
)

// Mirror Defaults
const (
	DefaultInterval = "00:05:00"
)

// Event Log Flags
const (
	flagTimeLayout    = "time-layout"
	flagTimeZone      = "time-zone"
	flagLogMaxSize    = "log-max-size"
	flagLogMaxBackups = "log-max-backups"
	flagLogMaxAge     = "log-max-age"
	flagLogCompress   = "log-compress"
)

// Event Log Defaults
const (
	DefaultLogMaxSize    = 100 // megabytes
	DefaultLogMaxBackups = 3
	DefaultLogMaxAge     = 28 // days
)

// History Flags
const (
	flagHistoryLimit  = "limit"
	flagHistoryFailed = "failed"
	flagHistoryStats  = "stats"
)

// Log Flags
const (
	flagLogPath   = "log-path"
	flagLogFormat = "log-format"
	flagLogPerm   = "log-perm"
)

// Log Defaults
const (
	DefaultLogFormat = log.FormatText
)

func initDebugFlags(flag *pflag.FlagSet) {
	flag.BoolP(flagDebug, "d", false, "print debug messages")
}

func initConfigFlags(flag *pflag.FlagSet) {
	flag.String(flagConfig, "", "path to a config file (yaml, toml, or json) with values for any flag")
}

func initMirrorFlags(flag *pflag.FlagSet) {
	flag.StringP(flagLogDirectory, "l", "", "directory for the event log file")
	flag.StringP(flagInterval, "i", DefaultInterval, "interval between synchronizations as a go duration (e.g., 5m) or as hh:mm:ss")
	flag.BoolP(flagParents, "p", false, "create the source, replica, and log directories if they do not exist")
	flag.String(flagHistoryDB, "", "path to a SQLite database for recording event history.  History is not recorded if empty.")
}

func initEventLogFlags(flag *pflag.FlagSet) {
	flag.StringP(flagTimeLayout, "t", "Default", "the layout to use for event timestamps.  Use go layout format, or the name of a layout.  Use gomirror layouts to show all named layouts.")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for event timestamps")
	flag.Int(flagLogMaxSize, DefaultLogMaxSize, "maximum size in megabytes of the event log file before it is rotated")
	flag.Int(flagLogMaxBackups, DefaultLogMaxBackups, "maximum number of rotated event log files to retain")
	flag.Int(flagLogMaxAge, DefaultLogMaxAge, "maximum number of days to retain rotated event log files")
	flag.Bool(flagLogCompress, false, "compress rotated event log files")
}

func initHistoryFlags(flag *pflag.FlagSet) {
	flag.String(flagHistoryDB, "", "path to the SQLite history database")
	flag.StringP(flagTimeLayout, "t", "Default", "the layout to use for event timestamps")
	flag.StringP(flagTimeZone, "z", "Local", "the timezone to use for event timestamps")
	flag.IntP(flagHistoryLimit, "n", 20, "maximum number of history records to show")
	flag.Bool(flagHistoryFailed, false, "only show errors")
	flag.Bool(flagHistoryStats, false, "show the number of records for each action")
}

func initLogFlags(flag *pflag.FlagSet) {
	flag.String(flagLogPath, "-", "path to the log output.  Defaults to the operating system's stdout device.")
	flag.StringP(flagLogFormat, "f", DefaultLogFormat, "output log format.  Either jsonl or text.")
	flag.String(flagLogPerm, "0600", "file permissions for log output file as unix file mode.")
}

func initMirrorCommandFlags(flag *pflag.FlagSet) {
	initDebugFlags(flag)
	initConfigFlags(flag)
	initMirrorFlags(flag)
	initEventLogFlags(flag)
	initLogFlags(flag)
}

func initHistoryCommandFlags(flag *pflag.FlagSet) {
	initConfigFlags(flag)
	initHistoryFlags(flag)
}

func initViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return v, fmt.Errorf("error binding flag set to viper: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // set environment variables to overwrite config
	if configPath := v.GetString(flagConfig); len(configPath) > 0 {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return v, fmt.Errorf("error reading config file %q: %w", configPath, err)
		}
	}
	return v, nil
}

func checkLogConfig(v *viper.Viper) error {
	logPath := v.GetString(flagLogPath)
	if len(logPath) == 0 {
		return fmt.Errorf("log path is missing")
	}
	logPerm := v.GetString(flagLogPerm)
	if len(logPerm) == 0 {
		return fmt.Errorf("log perm is missing")
	}
	_, err := strconv.ParseUint(logPerm, 8, 32)
	if err != nil {
		return fmt.Errorf("invalid format for log perm: %s", logPerm)
	}
	logFormat := v.GetString(flagLogFormat)
	if logFormat != log.FormatJSONL && logFormat != log.FormatText {
		return fmt.Errorf("invalid log format %q, expecting either %q or %q", logFormat, log.FormatJSONL, log.FormatText)
	}
	return nil
}

func checkEventLogConfig(v *viper.Viper) error {
	for _, name := range []string{flagLogMaxSize, flagLogMaxBackups, flagLogMaxAge} {
		if value := v.GetInt(name); value < 0 {
			return fmt.Errorf("%q value %d is invalid, expecting value greater than or equal to 0", name, value)
		}
	}
	if _, err := ts.ParseLocation(v.GetString(flagTimeZone)); err != nil {
		return fmt.Errorf("error parsing time zone %q: %w", v.GetString(flagTimeZone), err)
	}
	return nil
}

func checkMirrorConfig(v *viper.Viper, args []string, requireLogDirectory bool) error {
	if len(args) != 2 {
		return fmt.Errorf("expecting 2 positional arguments for source and replica, but found %d arguments", len(args))
	}
	if requireLogDirectory && len(v.GetString(flagLogDirectory)) == 0 {
		return fmt.Errorf("log directory is missing")
	}
	if err := checkEventLogConfig(v); err != nil {
		return fmt.Errorf("error with event log configuration: %w", err)
	}
	if err := checkLogConfig(v); err != nil {
		return fmt.Errorf("error with log configuration: %w", err)
	}
	return nil
}

func initLogger(path string, perm string, format string) (*log.SimpleLogger, error) {

	if path == os.DevNull {
		return log.NewSimpleLogger(io.Discard, format)
	}

	if path == "-" {
		return log.NewSimpleLogger(os.Stdout, format)
	}

	fileMode := os.FileMode(0600)

	if len(perm) > 0 {
		fm, err := strconv.ParseUint(perm, 8, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing file permissions for log file from %q", perm)
		}
		fileMode = os.FileMode(fm)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %q: %w", path, err)
	}

	return log.NewSimpleLogger(f, format)
}

// initInterval parses the interval and falls back to the default interval if it is invalid.
func initInterval(str string, logger log.Logger) time.Duration {
	interval, err := ts.ParseInterval(str)
	if err != nil {
		_ = logger.Log("Invalid interval, using default interval", map[string]interface{}{
			"interval": str,
			"default":  ts.DefaultInterval.String(),
			"err":      err.Error(),
		})
		return ts.DefaultInterval
	}
	return interval
}

type InitMirrorInput struct {
	Viper   *viper.Viper
	Args    []string
	Logger  log.Logger
	Console io.Writer // receives event lines if not nil
}

// InitMirror validates the directories and opens the event sinks.
// The returned function closes every sink that was opened.
func InitMirror(input *InitMirrorInput) (*mirror.RunInput, func() error, error) {
	v := input.Viper
	parents := v.GetBool(flagParents)

	sourceDirectory, err := lfs.Validate(&lfs.ValidateInput{
		Name:    "source",
		Path:    input.Args[0],
		Parents: parents,
	})
	if err != nil {
		return nil, nil, err
	}

	replicaDirectory, err := lfs.Validate(&lfs.ValidateInput{
		Name:    "replica",
		Path:    input.Args[1],
		Parents: parents,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := lfs.Check(sourceDirectory, replicaDirectory); err != nil {
		return nil, nil, err
	}

	logDirectory := ""
	if p := v.GetString(flagLogDirectory); len(p) > 0 {
		logDirectory, err = lfs.Validate(&lfs.ValidateInput{
			Name:    "log",
			Path:    p,
			Parents: parents,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	config := mirror.Config{
		SourceDirectory:  sourceDirectory,
		ReplicaDirectory: replicaDirectory,
		LogDirectory:     logDirectory,
		Interval:         initInterval(v.GetString(flagInterval), input.Logger),
	}

	layout := ts.ParseLayout(v.GetString(flagTimeLayout))
	location, err := ts.ParseLocation(v.GetString(flagTimeZone))
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing time zone %q: %w", v.GetString(flagTimeZone), err)
	}

	sinks := eventlog.MultiSink{}
	closers := []func() error{}
	closeAll := func() error {
		errs := []error{}
		for _, c := range closers {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	if len(logDirectory) > 0 {
		fileSink, err := eventlog.NewFileSink(&eventlog.NewFileSinkInput{
			LogDirectory:    logDirectory,
			SourceDirectory: sourceDirectory,
			MaxSize:         v.GetInt(flagLogMaxSize),
			MaxBackups:      v.GetInt(flagLogMaxBackups),
			MaxAge:          v.GetInt(flagLogMaxAge),
			Compress:        v.GetBool(flagLogCompress),
			Layout:          layout,
			Location:        location,
			Fallback:        os.Stderr,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("error opening event log: %w", err)
		}
		sinks = append(sinks, fileSink)
		closers = append(closers, fileSink.Close)
	}

	if input.Console != nil {
		sinks = append(sinks, eventlog.NewWriterSink(input.Console, layout, location))
	}

	if historyPath := v.GetString(flagHistoryDB); len(historyPath) > 0 {
		repository, err := history.Open(historyPath)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("error opening history: %w", err)
		}
		sinks = append(sinks, repository)
		closers = append(closers, repository.Close)
	}

	runInput := &mirror.RunInput{
		Config: config,
		Sink:   sinks,
		Logger: input.Logger,
		Debug:  v.GetBool(flagDebug),
	}

	return runInput, closeAll, nil
}

// formatRecord renders a history record the same way the event log renders the event.
func formatRecord(r history.Record, layout ts.Layout, location *time.Location) (string, error) {
	action, ok := mirror.ParseAction(r.Action)
	if !ok {
		return "", fmt.Errorf("unknown action %q in history record %d", r.Action, r.ID)
	}
	e := mirror.Event{
		Timestamp:    r.OccurredAt,
		Action:       action,
		RelativePath: r.Path,
	}
	if action == mirror.ActionError {
		e.Err = errors.New(r.Detail)
	}
	return eventlog.Format(e, layout, location), nil
}

func main() {
	rootCommand := &cobra.Command{
		Use:                   `gomirror [flags]`,
		DisableFlagsInUseLine: true,
		Short: strings.Join([]string{
			"gomirror is a simple command line program for mirroring a source directory into a replica directory.",
			"The replica is made identical to the source and kept that way at a fixed interval.",
			"Every file created, updated, or deleted in the replica is recorded in an event log file.",
		}, "\n"),
	}

	layoutsCommand := &cobra.Command{
		Use:                   `layouts`,
		DisableFlagsInUseLine: true,
		Short:                 "show supported timestamp layouts",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(ts.NamedLayouts))
			for name := range ts.NamedLayouts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %s\n", name, ts.NamedLayouts[name])
			}
			return nil
		},
	}

	runCommand := &cobra.Command{
		Use:                   "run SOURCE REPLICA",
		DisableFlagsInUseLine: true,
		Short:                 "run",
		Long:                  "synchronize the replica with the source now and then again after every interval until interrupted",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkMirrorConfig(v, args, true); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm), v.GetString(flagLogFormat))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			runInput, closeSinks, err := InitMirror(&InitMirrorInput{
				Viper:  v,
				Args:   args,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSinks(); err != nil {
					_ = logger.Log("Error closing event sinks", map[string]interface{}{
						"err": err.Error(),
					})
				}
			}()

			_ = logger.Log("Starting mirror", map[string]interface{}{
				"config": runInput.Config.String(),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scheduler := schedule.New(&schedule.NewInput{
				Interval: runInput.Config.Interval,
				Logger:   logger,
			})

			err = scheduler.Start(ctx, func(ctx context.Context) error {
				_, err := mirror.Run(ctx, runInput)
				return err
			})
			if err != nil {
				return fmt.Errorf("error running scheduler: %w", err)
			}

			_ = logger.Log("Stopped mirror", map[string]interface{}{
				"src":          runInput.Config.SourceDirectory,
				"dst":          runInput.Config.ReplicaDirectory,
				"synchronized": scheduler.Ticks(),
			})

			return nil
		},
	}
	initMirrorCommandFlags(runCommand.Flags())

	syncCommand := &cobra.Command{
		Use:                   "sync SOURCE REPLICA",
		DisableFlagsInUseLine: true,
		Short:                 "sync",
		Long:                  "synchronize the replica with the source once and print every event",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			if errConfig := checkMirrorConfig(v, args, false); errConfig != nil {
				return errConfig
			}

			logger, err := initLogger(v.GetString(flagLogPath), v.GetString(flagLogPerm), v.GetString(flagLogFormat))
			if err != nil {
				return fmt.Errorf("error initializing logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			runInput, closeSinks, err := InitMirror(&InitMirrorInput{
				Viper:   v,
				Args:    args,
				Logger:  logger,
				Console: os.Stdout,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSinks(); err != nil {
					_ = logger.Log("Error closing event sinks", map[string]interface{}{
						"err": err.Error(),
					})
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := mirror.Run(ctx, runInput)
			if err != nil {
				return fmt.Errorf("error synchronizing: %w", err)
			}

			counts := mirror.Count(events)
			summary := make([]string, 0, len(mirror.Actions))
			for _, a := range mirror.Actions {
				summary = append(summary, fmt.Sprintf("%s: %d", a, counts[a]))
			}
			fmt.Println(strings.Join(summary, ", "))

			return nil
		},
	}
	initMirrorCommandFlags(syncCommand.Flags())

	historyCommand := &cobra.Command{
		Use:                   "history",
		DisableFlagsInUseLine: true,
		Short:                 "history",
		Long:                  "show the most recent events recorded in the history database",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {

			v, err := initViper(cmd)
			if err != nil {
				return fmt.Errorf("error initializing viper: %w", err)
			}

			historyPath := v.GetString(flagHistoryDB)
			if len(historyPath) == 0 {
				return fmt.Errorf("history database is missing")
			}

			limit := v.GetInt(flagHistoryLimit)
			if limit < 1 {
				return fmt.Errorf("%q value %d is invalid, expecting value greater than 0", flagHistoryLimit, limit)
			}

			layout := ts.ParseLayout(v.GetString(flagTimeLayout))
			location, err := ts.ParseLocation(v.GetString(flagTimeZone))
			if err != nil {
				return fmt.Errorf("error parsing time zone %q: %w", v.GetString(flagTimeZone), err)
			}

			repository, err := history.Open(historyPath)
			if err != nil {
				return err
			}
			defer func() { _ = repository.Close() }()

			if v.GetBool(flagHistoryStats) {
				stats, err := repository.Stats()
				if err != nil {
					return err
				}
				for _, a := range mirror.Actions {
					fmt.Printf("%s: %d\n", a, stats.Actions[a])
				}
				fmt.Printf("Total: %d\n", stats.Total)
				return nil
			}

			var records []history.Record
			if v.GetBool(flagHistoryFailed) {
				records, err = repository.Failed(limit)
			} else {
				records, err = repository.Recent(limit)
			}
			if err != nil {
				return fmt.Errorf("error reading history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println("no history yet")
				return nil
			}

			for _, r := range records {
				line, err := formatRecord(r, layout, location)
				if err != nil {
					return err
				}
				fmt.Println(line)
			}

			return nil
		},
	}
	initHistoryCommandFlags(historyCommand.Flags())

	versionCommand := &cobra.Command{
		Use:                   `version`,
		DisableFlagsInUseLine: true,
		Short:                 "show version",
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(GoMirrorVersion)
			return nil
		},
	}

	rootCommand.AddCommand(layoutsCommand, runCommand, syncCommand, historyCommand, versionCommand)

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gomirror: "+err.Error())
		fmt.Fprintln(os.Stderr, "Try \"gomirror --help\" for more information.")
		os.Exit(1)
	}
}
