package relay

import (
	"sync/atomic"
	"time"

	"github.com/raceline/f1-telemetry/internal/servers/base/udp"
)

// Publisher is the part of *nats.Conn the relay needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Stats counts what happened to the datagrams the relay has seen.
type Stats struct {
	Published  uint64
	Skipped    uint64
	Incomplete uint64
	Conversion uint64
	Failed     uint64
}

type RelayServer struct {
	*udp.UDPServer

	publisher Publisher
	now       func() time.Time

	published  atomic.Uint64
	skipped    atomic.Uint64
	incomplete atomic.Uint64
	conversion atomic.Uint64
	failed     atomic.Uint64
}

func NewRelayServer(baseServer *udp.UDPServer, publisher Publisher) *RelayServer {
	return &RelayServer{
		UDPServer: baseServer,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *RelayServer) Stats() Stats {
	return Stats{
		Published:  s.published.Load(),
		Skipped:    s.skipped.Load(),
		Incomplete: s.incomplete.Load(),
		Conversion: s.conversion.Load(),
		Failed:     s.failed.Load(),
	}
}
