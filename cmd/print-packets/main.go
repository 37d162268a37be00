package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/raceline/f1-telemetry/internal/capture"
	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/servers/base/udp"
)

func main() {
	// load .env file automatically
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found (continuing with system environment)")
	}

	// parse config from environment
	cfg := config.ParseConfigFromEnv()

	port := flag.Int("port", cfg.ServerPort, "UDP port to listen on, or to filter a capture by (0 = any)")
	pcapFile := flag.String("pcap", "", "replay datagrams from a pcap file instead of listening")
	dump := flag.Bool("dump", false, "dump every decoded packet in full")
	flag.Parse()

	// detect the log level
	logLevel := slog.LevelInfo
	if err = logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid log level: '%s'\n", cfg.LogLevel)
		os.Exit(1)
	}

	// setup our logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	p := newPrinter(logger, os.Stdout, *dump)

	if *pcapFile != "" {
		err = replay(*pcapFile, *port, p)
	} else {
		cfg.ServerPort = *port
		err = listen(&cfg, logger, p)
	}

	if err != nil {
		logger.Error("print-packets failed", "error", err)
		os.Exit(1)
	}
}

func replay(path string, port int, p *printer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	count, err := capture.ReadFile(ctx, path, port, func(_ context.Context, datagram capture.Datagram) error {
		p.print(datagram.SourceAddr.String(), datagram.Payload)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	p.logger.Info("capture replayed", "file", path, "datagrams", count, "decoded", p.decoded, "dropped", p.dropped)
	return nil
}

func listen(cfg *config.Config, logger *slog.Logger, p *printer) error {
	// setup wait group for goroutines
	var wg sync.WaitGroup

	// create a context for graceful shutdown
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	server, err := udp.NewUDPServer(cfg, logger)
	if err != nil {
		return err
	}

	//nolint:errcheck // socket will be closed on shutdown
	defer server.Close()

	wg.Add(1)
	go server.ProcessDatagrams(ctx, &wg, func(_ context.Context, length int, data []byte, clientAddr *net.UDPAddr) {
		p.print(clientAddr.String(), data[:length])
	})

	return server.WaitForShutdown(cancelCtx, &wg)
}
