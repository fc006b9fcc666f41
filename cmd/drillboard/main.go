package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/logging"
	intOtel "github.com/drillboard/tactics/internal/otel"
	"github.com/drillboard/tactics/internal/storage"
	"github.com/drillboard/tactics/internal/timeline"
	"github.com/drillboard/tactics/pkg/core"
)

// build info, set via ldflags
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

const appName = "drillboard"

// errUsage marks command line mistakes; main prints usage for them.
var errUsage = errors.New("usage")

// app carries what every command needs once flags and config are resolved.
type app struct {
	stdout io.Writer

	log     *slog.Logger
	zlog    zerolog.Logger
	slogs   *logging.SlogManager
	otel    *intOtel.Provider
	logFile *os.File
	logPath string

	format  string
	at      float64
	all     bool
	upload  bool
	started time.Time
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "drillboard:", err)
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		os.Exit(1)
	}
}

const usage = `Usage:
  drillboard [flags] list
  drillboard [flags] scene NAME [--format json|yaml]
  drillboard [flags] pose NAME --time SECONDS [--speed slow|normal|fast]
  drillboard [flags] export [--all] [NAME...] [--speed ...] [--upload]
  drillboard [flags] publish
  drillboard [flags] board FILE.yaml [--speed ...] [--upload]
  drillboard [flags] board-save NAME FILE.yaml
  drillboard version
`

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.String("config-dir", ".", "directory holding "+config.FileName)
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("speed", string(core.SpeedNormal), "animation speed: slow, normal or fast")
	flags.Int("fps", timeline.DefaultFPS, "frames per second of exported timelines")
	flags.Int("loops", 1, "scene loops per exported timeline")
	flags.Int("workers", 0, "concurrent export jobs, 0 for one per CPU")
	flags.String("storage", "memory", "storage backend: "+strings.Join(storage.Types, ", "))
	flags.String("format", "json", "scene output format: json or yaml")
	flags.Float64("time", 0, "seconds since the scene started")
	flags.Bool("all", false, "export every catalog scene")
	flags.Bool("upload", false, "upload exported timelines to the web frontend")
	flags.String("tag", "", "tag attached to uploaded timelines")
	return flags
}

// run parses args, prepares config and logging, then dispatches the command.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := flags.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: no command given", errUsage)
	}
	if rest[0] == "version" {
		fmt.Fprintf(stdout, "%s %s (built %s)\n", appName, Version, BuildDate)
		return nil
	}

	configDir, _ := flags.GetString("config-dir")
	configErr := config.Load(configDir)
	if configErr != nil {
		config.SetDefaults()
	}
	if err := bindFlags(flags); err != nil {
		return err
	}
	if flags.Changed("speed") {
		name, _ := flags.GetString("speed")
		if _, ok := core.ParseSpeed(name); !ok {
			return fmt.Errorf("%w: unknown speed %q", errUsage, name)
		}
	}

	a := &app{stdout: stdout, started: time.Now()}
	a.format, _ = flags.GetString("format")
	a.at, _ = flags.GetFloat64("time")
	a.all, _ = flags.GetBool("all")
	a.upload, _ = flags.GetBool("upload")

	a.setupLogging()
	defer a.close()
	if configErr != nil {
		a.log.Warn("Failed to load config, using defaults!", "error", configErr)
	} else {
		a.log.Info("Loaded config", "dir", configDir)
	}

	return a.dispatch(ctx, rest[0], rest[1:])
}

// bindFlags maps the short flag names onto their config keys.
func bindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"logLevel":     "log-level",
		"render.speed": "speed",
		"render.fps":   "fps",
		"render.loops": "loops",
		"workers":      "workers",
		"storage.type": "storage",
		"api.tag":      "tag",
	}
	for key, name := range bindings {
		if !flags.Changed(name) {
			continue
		}
		if err := config.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		return a.list()
	case "scene":
		if len(args) != 1 {
			return fmt.Errorf("%w: scene takes one NAME", errUsage)
		}
		return a.scene(args[0])
	case "pose":
		if len(args) != 1 {
			return fmt.Errorf("%w: pose takes one NAME", errUsage)
		}
		return a.pose(args[0])
	case "export":
		return a.export(ctx, args)
	case "publish":
		return a.publish(ctx)
	case "board":
		if len(args) != 1 {
			return fmt.Errorf("%w: board takes one FILE", errUsage)
		}
		return a.board(ctx, args[0])
	case "board-save":
		if len(args) != 2 {
			return fmt.Errorf("%w: board-save takes NAME and FILE", errUsage)
		}
		return a.saveBoard(args[0], args[1])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// setupLogging sends logs to a session file in logsDir, falling back to
// stderr so command output on stdout stays clean.
func (a *app) setupLogging() {
	level := viper.GetString("logLevel")
	a.slogs = logging.NewSlogManager()

	var sink io.Writer = os.Stderr
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err == nil {
		a.logPath = logging.LogFilePath(logsDir, appName, a.started)
		f, err := os.OpenFile(a.logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err == nil {
			a.logFile = f
			sink = f
		}
	}

	otelCfg := config.GetOTelConfig()
	provider, otelErr := intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    sink,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if otelErr != nil {
		provider, _ = intOtel.New(intOtel.Config{})
	}
	a.otel = provider

	var logProvider *sdklog.LoggerProvider
	if a.otel.Enabled() {
		logProvider = a.otel.LoggerProvider()
	}
	var graylogAddress string
	if viper.GetBool("graylog.enabled") {
		graylogAddress = viper.GetString("graylog.address")
	}
	_ = a.slogs.Setup(logging.Options{
		File:           sink,
		Level:          level,
		Provider:       logProvider,
		GraylogAddress: graylogAddress,
		Context: func() []slog.Attr {
			return []slog.Attr{slog.String("version", Version)}
		},
	})
	a.log = a.slogs.Logger()
	a.zlog = logging.NewZerolog(sink, level)

	if otelErr != nil {
		a.log.Error("Failed to initialize OTel provider", "error", otelErr)
	} else if a.otel.Enabled() {
		a.log.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
	}
	if a.logFile != nil {
		a.log.Info("Logging to file", "path", a.logPath)
	}
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.slogs != nil {
		_ = a.slogs.Close(ctx)
	}
	if a.otel != nil {
		_ = a.otel.Shutdown(ctx)
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
