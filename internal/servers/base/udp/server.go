package udp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/raceline/f1-telemetry/internal/config"
	"github.com/raceline/f1-telemetry/internal/servers/base"
)

const (
	// MaxBufferSize is larger than the biggest datagram the game sends.
	MaxBufferSize = 4096
)

// DatagramHandler defines a function type for handling incoming UDP datagrams.
type DatagramHandler func(ctx context.Context, length int, data []byte, clientAddr *net.UDPAddr)

// UDPServer represents a UDP server.
type UDPServer struct {
	socket   *net.UDPConn
	log      *slog.Logger
	cfg      *config.Config
	natsConn *nats.Conn
}

// NewUDPServer creates and configures a new UDPServer instance.
func NewUDPServer(cfg *config.Config, logger *slog.Logger) (*UDPServer, error) {
	// resolve udp address to host on
	addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", cfg.ServerPort))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve UDP address: %w", err)
	}

	// create the UDP listener
	socket, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start UDP listener: %w", err)
	}

	logger.Info("server listening", "address", socket.LocalAddr().String())
	srv := UDPServer{
		socket: socket,
		log:    logger,
		cfg:    cfg,
	}

	return &srv, nil
}

// Config returns the server's configuration.
func (s *UDPServer) Config() *config.Config {
	return s.cfg
}

// Logger returns the server's logger.
func (s *UDPServer) Logger() *slog.Logger {
	return s.log
}

// Socket returns the server's UDP socket.
func (s *UDPServer) Socket() *net.UDPConn {
	return s.socket
}

// NATS returns the server's NATS connection.
func (s *UDPServer) NATS() *nats.Conn {
	return s.natsConn
}

// Close closes the socket and drains the NATS connection, if there is one.
func (s *UDPServer) Close() error {
	if s.natsConn != nil {
		if err := s.natsConn.Drain(); err != nil {
			s.Logger().Warn("failed to drain NATS connection", "error", err)
		}
	}

	return s.socket.Close()
}

// ProcessDatagrams reads datagrams until ctx is cancelled and hands a private copy of each one to
// the handler. Reads are bounded by the configured read timeout so cancellation is noticed even
// when the game has stopped sending.
func (s *UDPServer) ProcessDatagrams(ctx context.Context, wg *sync.WaitGroup, handler DatagramHandler) {
	defer wg.Done()

	buffer := make([]byte, MaxBufferSize)
	readTimeout := time.Duration(s.Config().ServerReadTimeoutMilliseconds) * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			s.Logger().Info("stopping datagram processor")
			return
		default:
			if readTimeout > 0 {
				if err := s.Socket().SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
					s.Logger().Error("failed to set read deadline", "error", err)
				}
			}

			n, clientAddr, err := s.Socket().ReadFromUDP(buffer)
			if err != nil {
				if errors.Is(err, os.ErrDeadlineExceeded) {
					continue
				}

				if errors.Is(err, net.ErrClosed) {
					s.Logger().Info("socket closed, stopping datagram processor")
					return
				}

				s.Logger().Error("error reading from UDP socket", "error", err)
				continue
			}

			// make a copy of the data for processing
			data := make([]byte, n)
			copy(data, buffer[:n])

			// handle the incoming data
			handler(ctx, n, data, clientAddr)
		}
	}
}

// WaitForShutdown waits for shutdown signals and triggers the provided cancel function.
func (s *UDPServer) WaitForShutdown(cancelCtx context.CancelFunc, wg *sync.WaitGroup) error {
	return base.WaitForSignal(s.Logger(), cancelCtx, wg, time.Duration(s.Config().ShutdownTimeoutSeconds)*time.Second)
}
