package udp

import (
	"github.com/raceline/f1-telemetry/internal/servers/base"
)

func (s *UDPServer) CreateNATSConnection() error {
	nc, err := base.CreateNATSConnection(s.Config(), s.Logger())
	if err != nil {
		return err
	}

	s.natsConn = nc
	return nil
}
