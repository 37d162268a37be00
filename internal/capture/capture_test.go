package capture

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gameIP  = net.IPv4(192, 168, 1, 20)
	rigIP   = net.IPv4(192, 168, 1, 10)
	startAt = time.Date(2021, 7, 18, 14, 0, 0, 0, time.UTC)
)

type captureBuilder struct {
	t      *testing.T
	buf    bytes.Buffer
	writer *pcapgo.Writer
	frames int
}

func newCaptureBuilder(t *testing.T) *captureBuilder {
	t.Helper()

	b := &captureBuilder{t: t}
	b.writer = pcapgo.NewWriter(&b.buf)
	require.NoError(t, b.writer.WriteFileHeader(65536, layers.LinkTypeEthernet))
	return b
}

func (b *captureBuilder) write(transport gopacket.SerializableLayer, payload []byte) {
	b.t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 0x01},
		DstMAC:       net.HardwareAddr{0x02, 0, 0, 0, 0, 0x02},
		EthernetType: layers.EthernetTypeIPv4,
	}

	ip := &layers.IPv4{
		Version: 4,
		IHL:     5,
		TTL:     64,
		SrcIP:   gameIP,
		DstIP:   rigIP,
	}

	switch layer := transport.(type) {
	case *layers.UDP:
		ip.Protocol = layers.IPProtocolUDP
		require.NoError(b.t, layer.SetNetworkLayerForChecksum(ip))
	case *layers.TCP:
		ip.Protocol = layers.IPProtocolTCP
		require.NoError(b.t, layer.SetNetworkLayerForChecksum(ip))
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(b.t, gopacket.SerializeLayers(buf, opts, eth, ip, transport, gopacket.Payload(payload)))

	data := buf.Bytes()
	ci := gopacket.CaptureInfo{
		Timestamp:     startAt.Add(time.Duration(b.frames) * 50 * time.Millisecond),
		CaptureLength: len(data),
		Length:        len(data),
	}
	require.NoError(b.t, b.writer.WritePacket(ci, data))
	b.frames++
}

func (b *captureBuilder) udp(srcPort, dstPort int, payload []byte) {
	b.write(&layers.UDP{SrcPort: layers.UDPPort(srcPort), DstPort: layers.UDPPort(dstPort)}, payload)
}

func TestReadDatagrams(t *testing.T) {
	b := newCaptureBuilder(t)
	b.udp(50000, 20777, []byte("first"))
	b.udp(50000, 5353, []byte("mdns"))
	b.write(&layers.TCP{SrcPort: 40000, DstPort: 20777, SYN: true, Window: 1024}, nil)
	b.udp(50000, 20777, bytes.Repeat([]byte{0xaa}, 1464))

	var got []Datagram
	count, err := ReadDatagrams(context.Background(), &b.buf, 20777, func(_ context.Context, d Datagram) error {
		got = append(got, d)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, got, 2)

	assert.Equal(t, []byte("first"), got[0].Payload)
	assert.True(t, got[0].CapturedAt.Equal(startAt), got[0].CapturedAt)
	assert.True(t, got[0].SourceAddr.IP.Equal(gameIP))
	assert.Equal(t, 50000, got[0].SourceAddr.Port)

	assert.Len(t, got[1].Payload, 1464)
	assert.True(t, got[1].CapturedAt.Equal(startAt.Add(150*time.Millisecond)), got[1].CapturedAt)
}

func TestReadDatagramsAnyPort(t *testing.T) {
	b := newCaptureBuilder(t)
	b.udp(50000, 20777, []byte("a"))
	b.udp(50000, 20778, []byte("b"))

	count, err := ReadDatagrams(context.Background(), &b.buf, 0, func(context.Context, Datagram) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestReadDatagramsStopsOnCallbackError(t *testing.T) {
	b := newCaptureBuilder(t)
	b.udp(50000, 20777, []byte("a"))
	b.udp(50000, 20777, []byte("b"))

	stop := errors.New("stop")
	count, err := ReadDatagrams(context.Background(), &b.buf, 20777, func(context.Context, Datagram) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 0, count)
}

func TestReadDatagramsCancelled(t *testing.T) {
	b := newCaptureBuilder(t)
	b.udp(50000, 20777, []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadDatagrams(ctx, &b.buf, 20777, func(context.Context, Datagram) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadDatagramsInvalidHeader(t *testing.T) {
	_, err := ReadDatagrams(context.Background(), bytes.NewReader([]byte("not a capture")), 0, nil)
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	b := newCaptureBuilder(t)
	b.udp(50000, 20777, []byte("from disk"))

	path := filepath.Join(t.TempDir(), "session.pcap")
	require.NoError(t, os.WriteFile(path, b.buf.Bytes(), 0o600))

	var payloads []string
	count, err := ReadFile(context.Background(), path, 20777, func(_ context.Context, d Datagram) error {
		payloads = append(payloads, string(d.Payload))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"from disk"}, payloads)

	_, err = ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.pcap"), 0, nil)
	assert.Error(t, err)
}
