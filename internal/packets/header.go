package packets

import "fmt"

const (
	HeaderSize = 24
)

type PacketKind uint8

const (
	PacketKindMotion PacketKind = iota
	PacketKindSession
	PacketKindLapData
	PacketKindEvent
	PacketKindParticipants
	PacketKindCarSetups
	PacketKindCarTelemetry
	PacketKindCarStatus
	PacketKindFinalClassification
	PacketKindLobbyInfo
	PacketKindCarDamage
	PacketKindSessionHistory
)

//nolint:gochecknoglobals // lookup table
var packetKindNames = [...]string{
	PacketKindMotion:              "motion",
	PacketKindSession:             "session",
	PacketKindLapData:             "lap-data",
	PacketKindEvent:               "event",
	PacketKindParticipants:        "participants",
	PacketKindCarSetups:           "car-setups",
	PacketKindCarTelemetry:        "car-telemetry",
	PacketKindCarStatus:           "car-status",
	PacketKindFinalClassification: "final-classification",
	PacketKindLobbyInfo:           "lobby-info",
	PacketKindCarDamage:           "car-damage",
	PacketKindSessionHistory:      "session-history",
}

// ParsePacketKind converts the wire packet id byte into a PacketKind.
func ParsePacketKind(id uint8) (PacketKind, error) {
	if int(id) >= len(packetKindNames) {
		return 0, fmt.Errorf("%w: unknown packet id %d", ErrConversion, id)
	}

	return PacketKind(id), nil
}

func (k PacketKind) String() string {
	if int(k) >= len(packetKindNames) {
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}

	return packetKindNames[k]
}

func (k PacketKind) MarshalText() ([]byte, error) {
	if int(k) >= len(packetKindNames) {
		return nil, fmt.Errorf("%w: unknown packet id %d", ErrConversion, uint8(k))
	}

	return []byte(packetKindNames[k]), nil
}

func (k *PacketKind) UnmarshalText(text []byte) error {
	for id, name := range packetKindNames {
		if name == string(text) {
			*k = PacketKind(id) //nolint:gosec // bounded by the table size
			return nil
		}
	}

	return fmt.Errorf("%w: unknown packet kind %q", ErrConversion, text)
}

// Header is the fixed prefix shared by every packet kind.
type Header struct {
	// Packet format, the protocol year (2021).
	Format uint16 `json:"format"`

	// Game major and minor version ("X.00", "1.XX").
	GameMajorVersion uint8 `json:"gameMajorVersion"`
	GameMinorVersion uint8 `json:"gameMinorVersion"`

	// Version of this packet type, all start from 1.
	PacketVersion uint8 `json:"packetVersion"`

	// Identifier for the packet type.
	PacketKind PacketKind `json:"packetKind"`

	// Unique identifier for the session. Opaque, only useful for correlation.
	SessionUID uint64 `json:"sessionUID"`

	// Session timestamp in seconds.
	SessionTime float32 `json:"sessionTime"`

	// Identifier for the frame the data was retrieved on. Monotonic within one session only.
	FrameIdentifier uint32 `json:"frameIdentifier"`

	// Index of the player's car in the per-car arrays.
	PlayerCarIndex uint8 `json:"playerCarIndex"`

	// Index of the secondary player's car in split-screen; 255 if there is none.
	SecondaryPlayerCarIndex uint8 `json:"secondaryPlayerCarIndex"`
}

// ParseHeader decodes the common 24 byte header at the start of a datagram.
func ParseHeader(data []byte) (Header, error) {
	return parseHeader(newReader(data))
}

func parseHeader(r *reader) (Header, error) {
	if err := requireBytes(r, "header", HeaderSize); err != nil {
		return Header{}, err
	}

	header := Header{
		Format:           r.u16(),
		GameMajorVersion: r.u8(),
		GameMinorVersion: r.u8(),
		PacketVersion:    r.u8(),
	}

	kind, err := ParsePacketKind(r.u8())
	if err != nil {
		return Header{}, err
	}

	header.PacketKind = kind
	header.SessionUID = r.u64()
	header.SessionTime = r.f32()
	header.FrameIdentifier = r.u32()
	header.PlayerCarIndex = r.u8()
	header.SecondaryPlayerCarIndex = r.u8()

	return header, nil
}
