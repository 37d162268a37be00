package recorder

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/raceline/f1-telemetry/internal/database"
	"github.com/raceline/f1-telemetry/internal/influx"
	"github.com/raceline/f1-telemetry/internal/packets"
)

func (s *RecorderWorker) ProcessPacket(msg *nats.Msg) {
	s.Logger().Debug("received packet", "natsSubject", msg.Subject)

	// attempt to unmarshal the packet data
	routedPacket, err := packets.ParseRoutedPacket(msg.Data)
	if err != nil {
		s.Logger().Error("failed to unmarshal packet data; discarding", "natsSubject", msg.Subject, "error", err)
		s.failed.Add(1)
		return
	}

	if err = s.RecordPacket(routedPacket); err != nil {
		s.Logger().Warn("failed to record packet",
			"natsSubject", msg.Subject,
			"packetKind", routedPacket.Packet.Header.PacketKind.String(),
			"frameIdentifier", routedPacket.Packet.Header.FrameIdentifier,
			"error", err)
		s.failed.Add(1)
	}
}

// RecordPacket stores one packet according to its payload type.
func (s *RecorderWorker) RecordPacket(routedPacket packets.RoutedPacket) error {
	header := routedPacket.Packet.Header

	// begin checking payload type
	switch payload := routedPacket.Packet.Payload.(type) {
	case packets.EventData:
		return s.recordEvent(header, payload)
	case packets.MotionData:
		if s.points == nil {
			s.ignored.Add(1)
			return nil
		}

		point, err := influx.MotionPoint(header, payload, routedPacket.ReceivedAt)
		if err != nil {
			return s.ignorePlayerless(err)
		}

		s.points.WritePoint(point)
		s.pointsWritten.Add(1)
	case packets.CarTelemetryData:
		if s.points == nil {
			s.ignored.Add(1)
			return nil
		}

		point, err := influx.CarTelemetryPoint(header, payload, routedPacket.ReceivedAt)
		if err != nil {
			return s.ignorePlayerless(err)
		}

		s.points.WritePoint(point)
		s.pointsWritten.Add(1)
	default:
		s.Logger().Debug("ignoring packet", "packetKind", header.PacketKind.String())
		s.ignored.Add(1)
	}

	return nil
}

func (s *RecorderWorker) recordEvent(header packets.Header, event packets.EventData) error {
	sessionEvent, err := database.NewSessionEvent(header, event)
	if err != nil {
		return err
	}

	ctx, cancel := s.storeContext()
	defer cancel()

	_, err = s.events.CreateSessionEvent(ctx, &sessionEvent)
	if err != nil {
		if errors.Is(err, database.ErrSessionEventNotUnique) {
			s.Logger().Debug("event already recorded", "eventCode", sessionEvent.EventCode, "frameIdentifier", header.FrameIdentifier)
			s.duplicates.Add(1)
			return nil
		}

		return fmt.Errorf("failed to store %s event: %w", event.Code, err)
	}

	s.Logger().Info("recorded event", "eventCode", sessionEvent.EventCode, "sessionUID", header.SessionUID, "sessionTime", header.SessionTime)
	s.eventsRecorded.Add(1)

	if event.Code == packets.EventCodeSessionEnded {
		s.logSessionSummary(ctx, header.SessionUID)
	}

	return nil
}

// ignorePlayerless drops frames with no player car (spectating) without counting a failure
func (s *RecorderWorker) ignorePlayerless(err error) error {
	s.Logger().Debug("ignoring frame without a player car", "error", err)
	s.ignored.Add(1)
	return nil
}
