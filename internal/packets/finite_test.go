package packets

import (
	"math"
	"testing"
)

func TestPacketFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	var motion MotionData
	motion.CarMotionData[3].GForceLateral = inf
	motion.CarMotionData[3].WorldPosition.X = nan
	motion.WheelSlip.FrontLeft = float32(math.Inf(-1))
	motion.FrontWheelsAngle = 0.25

	testCases := []struct {
		name     string
		packet   Packet
		replaced int
	}{
		{
			name:     "FastestLap",
			packet:   Packet{Header: expectedHeader(PacketKindEvent), Payload: EventData{Code: EventCodeFastestLap, Details: FastestLap{VehicleIdx: 1, LapTime: nan}}},
			replaced: 1,
		},
		{
			name:     "Motion",
			packet:   Packet{Header: expectedHeader(PacketKindMotion), Payload: motion},
			replaced: 3,
		},
		{
			name:     "HeaderSessionTime",
			packet:   Packet{Header: Header{PacketKind: PacketKindLapData, SessionTime: inf}, Payload: Unimplemented{}},
			replaced: 1,
		},
		{
			name:     "AlreadyFinite",
			packet:   Packet{Header: expectedHeader(PacketKindMotion), Payload: expectedMotion()},
			replaced: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, replaced := tc.packet.Finite()
			if replaced != tc.replaced {
				t.Fatalf("Finite() replaced %d values, want %d", replaced, tc.replaced)
			}

			if _, err := (&RoutedPacket{Packet: got}).ToJSON(); err != nil {
				t.Fatalf("ToJSON after Finite failed: %v", err)
			}
		})
	}
}

func TestPacketFiniteLeavesOriginal(t *testing.T) {
	var motion MotionData
	motion.CarMotionData[0].Yaw = float32(math.NaN())
	motion.CarMotionData[0].Pitch = 1.5

	packet := Packet{Header: expectedHeader(PacketKindMotion), Payload: motion}

	got, _ := packet.Finite()

	finite := got.Payload.(MotionData).CarMotionData[0]
	if finite.Yaw != 0 || finite.Pitch != 1.5 {
		t.Fatalf("Finite() car 0 = %+v, want yaw 0 and pitch 1.5", finite)
	}

	original := packet.Payload.(MotionData).CarMotionData[0]
	if !math.IsNaN(float64(original.Yaw)) {
		t.Fatalf("Finite() modified the original packet: yaw = %v", original.Yaw)
	}
}

func TestRoutedPacketJSONNonFinite(t *testing.T) {
	routed := RoutedPacket{
		ClientAddr: "127.0.0.1:20777",
		Packet: Packet{
			Header:  expectedHeader(PacketKindEvent),
			Payload: EventData{Code: EventCodeSpeedTrapTriggered, Details: SpeedTrap{VehicleIdx: 4, Speed: float32(math.Inf(1))}},
		},
	}

	data, err := routed.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	got, err := ParseRoutedPacket(data)
	if err != nil {
		t.Fatalf("ParseRoutedPacket failed: %v", err)
	}

	details := got.Packet.Payload.(EventData).Details
	if details != (SpeedTrap{VehicleIdx: 4, Speed: 0}) {
		t.Fatalf("Details = %+v, want speed trap of car 4 at speed 0", details)
	}

	// the caller's packet still carries the raw value
	if speed := routed.Packet.Payload.(EventData).Details.(SpeedTrap).Speed; !math.IsInf(float64(speed), 1) {
		t.Fatalf("ToJSON modified the packet: speed = %v", speed)
	}
}
