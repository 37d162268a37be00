package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/raceline/f1-telemetry/cmd/recorder"
	"github.com/raceline/f1-telemetry/cmd/relay"
	"github.com/raceline/f1-telemetry/internal/config"
)

// version information - to be set during build time
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "none"
)

type role struct {
	name        string
	description string
	run         func(cfg *config.Config, logger *slog.Logger) error
}

var roles = []role{
	{
		name:        "relay",
		description: "decode game telemetry from UDP and publish every packet on the NATS subject of its kind",
		run:         relay.Run,
	},
	{
		name:        "recorder",
		description: "store race events in MySQL and the player car's motion and telemetry in InfluxDB",
		run:         recorder.Run,
	},
}

func main() {
	// load .env file automatically
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (continuing with system environment)")
	}

	selected := selectRole()
	cfg := config.ParseConfigFromEnv()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger = logger.With("role", selected.name)

	// set the maxprocs
	if _, err = maxprocs.Set(maxprocs.Logger(func(message string, args ...any) {
		logger.Debug(fmt.Sprintf(message, args...))
	})); err != nil {
		logger.Error("could not set GOMAXPROCS", "error", err)
	}

	logger.Info("f1 telemetry "+selected.name+" starting",
		"version", Version,
		"gitCommit", GitCommit,
		"udpPort", cfg.ServerPort,
		"subjectPrefix", cfg.TelemetrySubjectPrefix)

	if err = selected.run(&cfg, logger); err != nil {
		logger.Error(selected.name+" exited with an error", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})), nil
}

func selectRole() role {
	name := flag.String("role", "", "service to run (relay or recorder)")
	version := flag.Bool("version", false, "print the build version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *version {
		fmt.Printf("f1-telemetry %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		os.Exit(0)
	}

	for _, r := range roles {
		if strings.EqualFold(r.name, *name) {
			return r
		}
	}

	if *name != "" {
		fmt.Fprintf(os.Stderr, "error: unknown role %q\n\n", *name)
	}

	printUsage()
	os.Exit(2)
	return role{}
}

func printUsage() {
	out := flag.CommandLine.Output()

	fmt.Fprintln(out, "f1-telemetry receives the F1 2021 UDP telemetry stream and fans it out.")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: f1-telemetry -role <relay|recorder>")
	fmt.Fprintln(out)
	for _, r := range roles {
		fmt.Fprintf(out, "  %-9s %s\n", r.name, r.description)
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration is read from the environment and an optional .env file, for example")
	fmt.Fprintln(out, "SERVER_PORT=20777 NATS_URL=nats://localhost:4222 f1-telemetry -role relay")
}
