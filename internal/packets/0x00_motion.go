package packets

const (
	// MotionPacketSize is the motion payload size: a 1464 byte frame minus the header.
	MotionPacketSize = 1464 - HeaderSize
)

// CarMotionData is the motion state of one car on the grid.
type CarMotionData struct {
	// World space position, in metres.
	WorldPosition Vector3[float32] `json:"worldPosition"`

	// Velocity in world space, in metres per second.
	WorldVelocity Vector3[float32] `json:"worldVelocity"`

	// World space forward and right directions, normalised. The values are fixed point
	// unit vector components: divide by 32767.0 to get the float value.
	WorldForwardDir Vector3[int16] `json:"worldForwardDir"`
	WorldRightDir   Vector3[int16] `json:"worldRightDir"`

	GForceLateral      float32 `json:"gForceLateral"`
	GForceLongitudinal float32 `json:"gForceLongitudinal"`
	GForceVertical     float32 `json:"gForceVertical"`

	// Angles in radians.
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
	Roll  float32 `json:"roll"`
}

// MotionData is the payload of a motion packet. Everything after the per-car table describes
// the player's car only.
type MotionData struct {
	CarMotionData [NumberOfCars]CarMotionData `json:"carMotionData"`

	SuspensionPosition     WheelQuad[float32] `json:"suspensionPosition"`
	SuspensionVelocity     WheelQuad[float32] `json:"suspensionVelocity"`
	SuspensionAcceleration WheelQuad[float32] `json:"suspensionAcceleration"`
	WheelSpeed             WheelQuad[float32] `json:"wheelSpeed"`
	WheelSlip              WheelQuad[float32] `json:"wheelSlip"`

	// Velocity in local space.
	LocalVelocity Vector3[float32] `json:"localVelocity"`

	AngularVelocity     Vector3[float32] `json:"angularVelocity"`
	AngularAcceleration Vector3[float32] `json:"angularAcceleration"`

	// Current front wheels angle in radians.
	FrontWheelsAngle float32 `json:"frontWheelsAngle"`
}

func (MotionData) isPayload() {}

func parseMotionPacket(r *reader) (MotionData, error) {
	if err := requireBytes(r, "motion payload", MotionPacketSize); err != nil {
		return MotionData{}, err
	}

	var packet MotionData

	for i := range packet.CarMotionData {
		packet.CarMotionData[i] = CarMotionData{
			WorldPosition:      readVector3(r.f32),
			WorldVelocity:      readVector3(r.f32),
			WorldForwardDir:    readVector3(r.i16),
			WorldRightDir:      readVector3(r.i16),
			GForceLateral:      r.f32(),
			GForceLongitudinal: r.f32(),
			GForceVertical:     r.f32(),
			Yaw:                r.f32(),
			Pitch:              r.f32(),
			Roll:               r.f32(),
		}
	}

	packet.SuspensionPosition = readWheelQuad(r.f32)
	packet.SuspensionVelocity = readWheelQuad(r.f32)
	packet.SuspensionAcceleration = readWheelQuad(r.f32)
	packet.WheelSpeed = readWheelQuad(r.f32)
	packet.WheelSlip = readWheelQuad(r.f32)
	packet.LocalVelocity = readVector3(r.f32)
	packet.AngularVelocity = readVector3(r.f32)
	packet.AngularAcceleration = readVector3(r.f32)
	packet.FrontWheelsAngle = r.f32()

	return packet, nil
}
