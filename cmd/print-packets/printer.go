package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"

	"github.com/raceline/f1-telemetry/internal/packets"
)

type printer struct {
	logger *slog.Logger
	out    io.Writer
	dump   bool
	config *spew.ConfigState

	decoded int
	dropped int
}

func newPrinter(logger *slog.Logger, out io.Writer, dump bool) *printer {
	return &printer{
		logger: logger,
		out:    out,
		dump:   dump,
		config: &spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true},
	}
}

// print is only called from one goroutine
func (p *printer) print(source string, datagram []byte) {
	packet, err := packets.Decode(datagram)
	if err != nil {
		reason := "unknown"
		if errors.Is(err, packets.ErrIncompleteData) {
			reason = "incomplete"
		} else if errors.Is(err, packets.ErrConversion) {
			reason = "conversion"
		}

		p.logger.Warn("failed to decode datagram", "source", source, "dataLength", len(datagram), "reason", reason, "error", err)
		p.dropped++
		return
	}

	p.decoded++
	p.logger.Info("packet", summarize(source, packet)...)

	if p.dump {
		p.config.Fdump(p.out, packet)
	}
}

func summarize(source string, packet packets.Packet) []any {
	header := packet.Header
	attrs := []any{
		"source", source,
		"packetKind", header.PacketKind.String(),
		"sessionUID", header.SessionUID,
		"sessionTime", header.SessionTime,
		"frameIdentifier", header.FrameIdentifier,
		"playerCarIndex", header.PlayerCarIndex,
	}

	switch payload := packet.Payload.(type) {
	case packets.EventData:
		attrs = append(attrs, "eventCode", payload.Code.String(), "details", payload.Details)
	case packets.CarTelemetryData:
		if int(header.PlayerCarIndex) < packets.NumberOfCars {
			car := payload.CarTelemetryData[header.PlayerCarIndex]
			attrs = append(attrs, "speed", car.Speed, "gear", car.Gear, "engineRPM", car.EngineRPM)
		}
	case packets.MotionData:
		if int(header.PlayerCarIndex) < packets.NumberOfCars {
			car := payload.CarMotionData[header.PlayerCarIndex]
			attrs = append(attrs, "worldPosition", car.WorldPosition)
		}
	case packets.Unimplemented:
		attrs = append(attrs, "decoded", false)
	}

	return attrs
}
