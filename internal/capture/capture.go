package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// Datagram is one UDP payload recovered from a capture.
type Datagram struct {
	CapturedAt time.Time
	SourceAddr *net.UDPAddr
	Payload    []byte
}

// DatagramFunc is called once per datagram, in capture order. Returning an error stops the read.
type DatagramFunc func(ctx context.Context, datagram Datagram) error

// ReadDatagrams walks a pcap stream and hands every UDP payload sent to port to fn. A port of 0
// matches every UDP datagram. Frames that are not UDP over IPv4 or IPv6 are skipped.
func ReadDatagrams(ctx context.Context, r io.Reader, port int, fn DatagramFunc) (int, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read pcap header: %w", err)
	}

	linkType := reader.LinkType()
	count := 0

	for {
		if err = ctx.Err(); err != nil {
			return count, err
		}

		data, ci, err := reader.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return count, nil
			}

			return count, fmt.Errorf("failed to read packet %d: %w", count+1, err)
		}

		packet := gopacket.NewPacket(data, linkType, gopacket.DecodeOptions{Lazy: true, NoCopy: true})

		udpLayer, ok := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
		if !ok {
			continue
		}

		if port != 0 && int(udpLayer.DstPort) != port {
			continue
		}

		datagram := Datagram{
			CapturedAt: ci.Timestamp,
			SourceAddr: &net.UDPAddr{IP: sourceIP(packet), Port: int(udpLayer.SrcPort)},
			Payload:    append([]byte(nil), udpLayer.Payload...),
		}

		if err = fn(ctx, datagram); err != nil {
			return count, err
		}

		count++
	}
}

func sourceIP(packet gopacket.Packet) net.IP {
	switch network := packet.NetworkLayer().(type) {
	case *layers.IPv4:
		return network.SrcIP
	case *layers.IPv6:
		return network.SrcIP
	}

	return nil
}

// ReadFile is ReadDatagrams over a capture file on disk.
func ReadFile(ctx context.Context, path string, port int, fn DatagramFunc) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer file.Close()

	return ReadDatagrams(ctx, file, port, fn)
}
