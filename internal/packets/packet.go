package packets

import (
	"encoding/json"
	"fmt"
)

// Payload is the kind specific body of a packet. The concrete type always matches
// Header.PacketKind: MotionData, EventData, CarTelemetryData, or Unimplemented for every kind
// that is not decoded structurally.
type Payload interface {
	isPayload()
}

// Unimplemented marks a valid packet kind whose body is not decoded.
type Unimplemented struct{}

func (Unimplemented) isPayload() {}

type Packet struct {
	Header  Header  `json:"header"`
	Payload Payload `json:"payload"`
}

// Decode decodes one complete datagram. The whole datagram is always consumed, whatever the
// outcome: a datagram is never a continuation of a previous one, so nothing is kept back.
//
// Errors wrap ErrIncompleteData when the datagram is shorter than its kind requires and
// ErrConversion when the packet kind or event code is unknown.
func Decode(datagram []byte) (Packet, error) {
	r := newReader(datagram)

	// the header has to be complete before anything else is looked at
	if err := requireBytes(r, "datagram", HeaderSize); err != nil {
		return Packet{}, err
	}

	header, err := parseHeader(r)
	if err != nil {
		return Packet{}, err
	}

	payload, err := parsePayload(header.PacketKind, r)
	if err != nil {
		return Packet{}, fmt.Errorf("failed to decode %s packet: %w", header.PacketKind, err)
	}

	return Packet{
		Header:  header,
		Payload: payload,
	}, nil
}

func parsePayload(kind PacketKind, r *reader) (Payload, error) {
	switch kind {
	case PacketKindMotion:
		return parseMotionPacket(r)
	case PacketKindEvent:
		return parseEventPacket(r)
	case PacketKindCarTelemetry:
		return parseCarTelemetryPacket(r)
	case PacketKindSession,
		PacketKindLapData,
		PacketKindParticipants,
		PacketKindCarSetups,
		PacketKindCarStatus,
		PacketKindFinalClassification,
		PacketKindLobbyInfo,
		PacketKindCarDamage,
		PacketKindSessionHistory:
		return Unimplemented{}, nil
	}

	return nil, fmt.Errorf("%w: unknown packet id %d", ErrConversion, uint8(kind))
}

// IsImplemented reports whether the payload was decoded structurally.
func (p Packet) IsImplemented() bool {
	_, unimplemented := p.Payload.(Unimplemented)
	return p.Payload != nil && !unimplemented
}

func (p *Packet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Header  Header          `json:"header"`
		Payload json.RawMessage `json:"payload"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var payload Payload
	var err error

	switch raw.Header.PacketKind {
	case PacketKindMotion:
		payload, err = unmarshalPayload[MotionData](raw.Payload)
	case PacketKindEvent:
		payload, err = unmarshalPayload[EventData](raw.Payload)
	case PacketKindCarTelemetry:
		payload, err = unmarshalPayload[CarTelemetryData](raw.Payload)
	default:
		payload = Unimplemented{}
	}

	if err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", raw.Header.PacketKind, err)
	}

	p.Header = raw.Header
	p.Payload = payload
	return nil
}

func unmarshalPayload[T Payload](raw json.RawMessage) (Payload, error) {
	var payload T
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return payload, nil
}
