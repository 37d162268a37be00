package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func eventDatagram(t *testing.T, code string, body ...any) []byte {
	t.Helper()

	var buf bytes.Buffer
	values := append([]any{
		uint16(2021), uint8(1), uint8(2), uint8(1), uint8(3),
		uint64(99), float32(5), uint32(10), uint8(0), uint8(255),
		[]byte(code),
	}, body...)

	for _, v := range values {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("binary.Write(%T) failed: %v", v, err)
		}
	}

	return buf.Bytes()
}

func TestPrinterSummary(t *testing.T) {
	var logs, out bytes.Buffer
	p := newPrinter(slog.New(slog.NewJSONHandler(&logs, nil)), &out, false)

	p.print("127.0.0.1:1", eventDatagram(t, "SPTP", uint8(4), float32(330), uint8(1), uint8(1)))

	var record map[string]any
	if err := json.Unmarshal(logs.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	if record["packetKind"] != "event" || record["eventCode"] != "SPTP" {
		t.Fatalf("summary = %v", record)
	}

	if out.Len() != 0 {
		t.Fatalf("dump written without -dump: %q", out.String())
	}

	if p.decoded != 1 || p.dropped != 0 {
		t.Fatalf("decoded = %d, dropped = %d", p.decoded, p.dropped)
	}
}

func TestPrinterDump(t *testing.T) {
	var out bytes.Buffer
	p := newPrinter(slog.New(slog.DiscardHandler), &out, true)

	p.print("127.0.0.1:1", eventDatagram(t, "STLG", uint8(4)))

	if !strings.Contains(out.String(), "NumLights: (uint8) 4") {
		t.Fatalf("dump does not show the event details:\n%s", out.String())
	}
}

func TestPrinterDropsBadDatagrams(t *testing.T) {
	var logs bytes.Buffer
	p := newPrinter(slog.New(slog.NewJSONHandler(&logs, nil)), &bytes.Buffer{}, true)

	p.print("127.0.0.1:1", []byte{1, 2, 3})
	p.print("127.0.0.1:1", eventDatagram(t, "YYYY"))

	if p.decoded != 0 || p.dropped != 2 {
		t.Fatalf("decoded = %d, dropped = %d", p.decoded, p.dropped)
	}

	if !strings.Contains(logs.String(), `"reason":"incomplete"`) || !strings.Contains(logs.String(), `"reason":"conversion"`) {
		t.Fatalf("failure classes not logged:\n%s", logs.String())
	}
}
