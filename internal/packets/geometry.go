package packets

const (
	// NumberOfCars is the fixed size of every per-car table in the 2021 protocol.
	NumberOfCars = 22
)

type scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~uint32 | ~float32
}

// Vector3 holds a position, velocity, direction or acceleration, one value per axis.
type Vector3[T scalar] struct {
	X T `json:"x"`
	Y T `json:"y"`
	Z T `json:"z"`
}

// WheelQuad holds one value per chassis corner, in wire order.
type WheelQuad[T scalar] struct {
	RearLeft   T `json:"rearLeft"`
	RearRight  T `json:"rearRight"`
	FrontLeft  T `json:"frontLeft"`
	FrontRight T `json:"frontRight"`
}

func readVector3[T scalar](read func() T) Vector3[T] {
	return Vector3[T]{
		X: read(),
		Y: read(),
		Z: read(),
	}
}

func readWheelQuad[T scalar](read func() T) WheelQuad[T] {
	return WheelQuad[T]{
		RearLeft:   read(),
		RearRight:  read(),
		FrontLeft:  read(),
		FrontRight: read(),
	}
}
