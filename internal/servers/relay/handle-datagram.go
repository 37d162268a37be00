package relay

import (
	"context"
	"errors"
	"net"

	"github.com/raceline/f1-telemetry/internal/packets"
)

// HandleIncomingPacket decodes one datagram and publishes it on the bus. A datagram that fails
// to decode is logged and dropped; it is never retried or joined with the next one.
func (s *RelayServer) HandleIncomingPacket(_ context.Context, length int, data []byte, clientAddr *net.UDPAddr) {
	clientAddrStr := clientAddr.String()

	packet, err := packets.Decode(data[:length])
	if err != nil {
		reason := "unknown"

		switch {
		case errors.Is(err, packets.ErrIncompleteData):
			reason = "incomplete"
			s.incomplete.Add(1)
		case errors.Is(err, packets.ErrConversion):
			reason = "conversion"
			s.conversion.Add(1)
		default:
			s.failed.Add(1)
		}

		s.Logger().Warn("failed to decode datagram; discarding",
			"clientAddr", clientAddrStr,
			"dataLength", length,
			"reason", reason,
			"error", err)
		return
	}

	kind := packet.Header.PacketKind
	if !packet.IsImplemented() && !s.Config().RelayUnimplementedPackets {
		s.Logger().Debug("skipping packet without a decoded body", "packetKind", kind.String())
		s.skipped.Add(1)
		return
	}

	// json has no NaN or infinity, those values travel as zero
	packet, replaced := packet.Finite()
	if replaced > 0 {
		s.Logger().Debug("replaced non-finite values", "packetKind", kind.String(), "count", replaced)
	}

	routedPacket := packets.RoutedPacket{
		ClientAddr: clientAddrStr,
		ReceivedAt: s.now().UTC(),
		Packet:     packet,
	}

	payload, err := routedPacket.ToJSON()
	if err != nil {
		s.Logger().Warn("failed to encode packet; discarding", "packetKind", kind.String(), "error", err)
		s.failed.Add(1)
		return
	}

	subject := s.Config().TelemetrySubject(kind.String())
	if err = s.publisher.Publish(subject, payload); err != nil {
		s.Logger().Warn("failed to publish routed packet to NATS", "subject", subject, "error", err)
		s.failed.Add(1)
		return
	}

	s.Logger().Debug("published packet",
		"subject", subject,
		"frameIdentifier", packet.Header.FrameIdentifier,
		"sessionTime", packet.Header.SessionTime)
	s.published.Add(1)
}
