package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/servers/base/udp"
	relayServer "github.com/raceline/f1-telemetry/internal/servers/relay"
)

// Run listens for telemetry datagrams and publishes every decoded packet to NATS until a
// shutdown signal arrives.
func Run(cfg *config.Config, logger *slog.Logger) error {
	// setup wait group for goroutines
	var wg sync.WaitGroup

	// create a context for graceful shutdown
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	// setup a new base udp server
	baseServer, err := udp.NewUDPServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create base server: %w", err)
	}

	//nolint:errcheck // socket will be closed on shutdown
	defer baseServer.Close()

	// connect to NATS server
	if err = baseServer.CreateNATSConnection(); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	server := relayServer.NewRelayServer(baseServer, baseServer.NATS())

	// start datagram processor goroutine
	wg.Add(1)
	go server.ProcessDatagrams(ctx, &wg, server.HandleIncomingPacket)

	// wait for shutdown signal
	err = server.WaitForShutdown(cancelCtx, &wg)
	logger.Info("relay stopped", "stats", server.Stats())
	return err
}
