package packets

import (
	"encoding/json"
	"time"
)

// RoutedPacket is a decoded packet as it travels over the message bus.
type RoutedPacket struct {
	ClientAddr string    `json:"clientAddr"`
	ReceivedAt time.Time `json:"receivedAt"`
	Packet     Packet    `json:"packet"`
}

// ToJSON encodes the packet for the bus. NaN and infinite floats are sent as zero; see Finite.
func (rp *RoutedPacket) ToJSON() ([]byte, error) {
	finite := *rp
	finite.Packet, _ = rp.Packet.Finite()
	return json.Marshal(&finite)
}

// ParseRoutedPacket is the inverse of ToJSON.
func ParseRoutedPacket(data []byte) (RoutedPacket, error) {
	var rp RoutedPacket
	err := json.Unmarshal(data, &rp)
	return rp, err
}
