package packets

const (
	// CarTelemetryPacketSize is the car telemetry payload size: a 1347 byte frame minus the header.
	CarTelemetryPacketSize = 1347 - HeaderSize
)

// CarTelemetry is the telemetry of one car on the grid.
type CarTelemetry struct {
	// Speed of the car in kilometres per hour.
	Speed uint16 `json:"speed"`

	// Amount of throttle and brake applied (0.0 to 1.0), steering (-1.0 full left to 1.0 full right).
	Throttle float32 `json:"throttle"`
	Steer    float32 `json:"steer"`
	Brake    float32 `json:"brake"`

	// Amount of clutch applied (0 to 100).
	Clutch uint8 `json:"clutch"`

	// Gear selected: -1 is reverse, 0 neutral, 1-8 forward.
	Gear int8 `json:"gear"`

	EngineRPM uint16 `json:"engineRPM"`
	DRS       bool   `json:"drs"`

	// Rev lights indicator as a percentage, and as a bitmask where bit 0 is the leftmost LED.
	RevLightsPercent uint8  `json:"revLightsPercent"`
	RevLightsBit     uint16 `json:"revLightsBit"`

	// Brake temperatures in celsius.
	BrakesTemperature WheelQuad[uint16] `json:"brakesTemperature"`

	// Tyre surface and inner temperatures in celsius.
	TyresSurfaceTemperature WheelQuad[uint8] `json:"tyresSurfaceTemperature"`
	TyresInnerTemperature   WheelQuad[uint8] `json:"tyresInnerTemperature"`

	// Engine temperature in celsius.
	EngineTemperature uint16 `json:"engineTemperature"`

	// Tyre pressures in PSI.
	TyresPressure WheelQuad[float32] `json:"tyresPressure"`

	// Driving surface under each tyre.
	SurfaceType WheelQuad[uint8] `json:"surfaceType"`
}

// CarTelemetryData is the payload of a car telemetry packet.
type CarTelemetryData struct {
	CarTelemetryData [NumberOfCars]CarTelemetry `json:"carTelemetryData"`

	// Index of the MFD panel open (255 = closed). Secondary is the second player's panel.
	MFDPanelIndex          uint8 `json:"mfdPanelIndex"`
	MFDPanelIndexSecondary uint8 `json:"mfdPanelIndexSecondary"`

	// Suggested gear for the player (1-8), 0 if there is no suggestion.
	SuggestedGear int8 `json:"suggestedGear"`
}

func (CarTelemetryData) isPayload() {}

func parseCarTelemetryPacket(r *reader) (CarTelemetryData, error) {
	if err := requireBytes(r, "car telemetry payload", CarTelemetryPacketSize); err != nil {
		return CarTelemetryData{}, err
	}

	var packet CarTelemetryData

	for i := range packet.CarTelemetryData {
		packet.CarTelemetryData[i] = CarTelemetry{
			Speed:                   r.u16(),
			Throttle:                r.f32(),
			Steer:                   r.f32(),
			Brake:                   r.f32(),
			Clutch:                  r.u8(),
			Gear:                    r.i8(),
			EngineRPM:               r.u16(),
			DRS:                     r.u8() == 1,
			RevLightsPercent:        r.u8(),
			RevLightsBit:            r.u16(),
			BrakesTemperature:       readWheelQuad(r.u16),
			TyresSurfaceTemperature: readWheelQuad(r.u8),
			TyresInnerTemperature:   readWheelQuad(r.u8),
			EngineTemperature:       r.u16(),
			TyresPressure:           readWheelQuad(r.f32),
			SurfaceType:             readWheelQuad(r.u8),
		}
	}

	packet.MFDPanelIndex = r.u8()
	packet.MFDPanelIndexSecondary = r.u8()
	packet.SuggestedGear = r.i8()

	return packet, nil
}
