package packets

import (
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	header, err := ParseHeader(readFixture(t, "header.pkt"))
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if want := expectedHeader(PacketKindMotion); header != want {
		t.Fatalf("ParseHeader() = %+v, want %+v", header, want)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	valid := readFixture(t, "header.pkt")

	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{name: "Empty", data: nil, want: ErrIncompleteData},
		{name: "OneByteShort", data: valid[:HeaderSize-1], want: ErrIncompleteData},
		{name: "UnknownKind", data: withKind(valid, 99), want: ErrConversion},
		{name: "FirstInvalidKind", data: withKind(valid, 12), want: ErrConversion},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseHeader(tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseHeader() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParsePacketKind(t *testing.T) {
	for id := range 256 {
		kind, err := ParsePacketKind(uint8(id))
		if id < 12 {
			if err != nil {
				t.Fatalf("ParsePacketKind(%d) failed: %v", id, err)
			}
			if uint8(kind) != uint8(id) {
				t.Fatalf("ParsePacketKind(%d) = %d", id, kind)
			}
			continue
		}

		if !errors.Is(err, ErrConversion) {
			t.Fatalf("ParsePacketKind(%d) error = %v, want %v", id, err, ErrConversion)
		}
	}
}

func TestPacketKindText(t *testing.T) {
	for kind := PacketKindMotion; kind <= PacketKindSessionHistory; kind++ {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", kind, err)
		}

		var got PacketKind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}

		if got != kind {
			t.Fatalf("UnmarshalText(%s) = %d, want %d", text, got, kind)
		}
	}

	if got := PacketKindCarTelemetry.String(); got != "car-telemetry" {
		t.Fatalf("String() = %q, want %q", got, "car-telemetry")
	}

	if got := PacketKind(42).String(); got != "unknown(42)" {
		t.Fatalf("String() = %q, want %q", got, "unknown(42)")
	}

	var kind PacketKind
	if err := kind.UnmarshalText([]byte("weather")); !errors.Is(err, ErrConversion) {
		t.Fatalf("UnmarshalText(weather) error = %v, want %v", err, ErrConversion)
	}
}

func withKind(datagram []byte, kind uint8) []byte {
	out := append([]byte(nil), datagram...)
	out[5] = kind
	return out
}
