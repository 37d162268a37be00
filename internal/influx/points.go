package influx

import (
	"fmt"
	"strconv"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/raceline/f1-telemetry/internal/packets"
)

const (
	MeasurementCarTelemetry = "car_telemetry"
	MeasurementCarMotion    = "car_motion"
)

// playerCarIndex returns the player's car, or an error when the header points outside the
// per-car arrays (spectating).
func playerCarIndex(header packets.Header) (int, error) {
	idx := int(header.PlayerCarIndex)
	if idx >= packets.NumberOfCars {
		return 0, fmt.Errorf("player car index %d out of range", header.PlayerCarIndex)
	}

	return idx, nil
}

func tags(header packets.Header, carIndex int) map[string]string {
	return map[string]string{
		"session": strconv.FormatUint(header.SessionUID, 16),
		"car":     strconv.Itoa(carIndex),
	}
}

// CarTelemetryPoint converts the player car's telemetry into a point stamped at ts.
func CarTelemetryPoint(header packets.Header, data packets.CarTelemetryData, ts time.Time) (*influxdb2_write.Point, error) {
	idx, err := playerCarIndex(header)
	if err != nil {
		return nil, err
	}

	car := data.CarTelemetryData[idx]
	fields := map[string]interface{}{
		"frame":              header.FrameIdentifier,
		"session_time":       header.SessionTime,
		"speed":              car.Speed,
		"throttle":           car.Throttle,
		"steer":              car.Steer,
		"brake":              car.Brake,
		"clutch":             car.Clutch,
		"gear":               car.Gear,
		"engine_rpm":         car.EngineRPM,
		"drs":                car.DRS,
		"rev_lights_percent": car.RevLightsPercent,
		"engine_temperature": car.EngineTemperature,
		"brake_temp_rl":      car.BrakesTemperature.RearLeft,
		"brake_temp_rr":      car.BrakesTemperature.RearRight,
		"brake_temp_fl":      car.BrakesTemperature.FrontLeft,
		"brake_temp_fr":      car.BrakesTemperature.FrontRight,
		"tyre_surface_rl":    car.TyresSurfaceTemperature.RearLeft,
		"tyre_surface_rr":    car.TyresSurfaceTemperature.RearRight,
		"tyre_surface_fl":    car.TyresSurfaceTemperature.FrontLeft,
		"tyre_surface_fr":    car.TyresSurfaceTemperature.FrontRight,
		"tyre_pressure_rl":   car.TyresPressure.RearLeft,
		"tyre_pressure_rr":   car.TyresPressure.RearRight,
		"tyre_pressure_fl":   car.TyresPressure.FrontLeft,
		"tyre_pressure_fr":   car.TyresPressure.FrontRight,
		"suggested_gear":     data.SuggestedGear,
	}

	return influxdb2_write.NewPoint(MeasurementCarTelemetry, tags(header, idx), fields, ts), nil
}

// MotionPoint converts the player car's motion into a point stamped at ts. The extended
// player-only fields (local velocity, front wheel angle) are included.
func MotionPoint(header packets.Header, data packets.MotionData, ts time.Time) (*influxdb2_write.Point, error) {
	idx, err := playerCarIndex(header)
	if err != nil {
		return nil, err
	}

	car := data.CarMotionData[idx]
	fields := map[string]interface{}{
		"frame":                header.FrameIdentifier,
		"session_time":         header.SessionTime,
		"position_x":           car.WorldPosition.X,
		"position_y":           car.WorldPosition.Y,
		"position_z":           car.WorldPosition.Z,
		"velocity_x":           car.WorldVelocity.X,
		"velocity_y":           car.WorldVelocity.Y,
		"velocity_z":           car.WorldVelocity.Z,
		"g_force_lateral":      car.GForceLateral,
		"g_force_longitudinal": car.GForceLongitudinal,
		"g_force_vertical":     car.GForceVertical,
		"yaw":                  car.Yaw,
		"pitch":                car.Pitch,
		"roll":                 car.Roll,
		"local_velocity_x":     data.LocalVelocity.X,
		"local_velocity_y":     data.LocalVelocity.Y,
		"local_velocity_z":     data.LocalVelocity.Z,
		"front_wheels_angle":   data.FrontWheelsAngle,
	}

	return influxdb2_write.NewPoint(MeasurementCarMotion, tags(header, idx), fields, ts), nil
}
