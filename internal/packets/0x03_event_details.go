package packets

import (
	"encoding/json"
	"fmt"
)

// EventDetails is the code specific part of an event packet. It is implemented only by the
// detail types in this file, one per EventCode.
type EventDetails interface {
	isEventDetails()
}

// VehicleEvent is implemented by the event details that refer to one car.
type VehicleEvent interface {
	EventDetails
	VehicleIndex() uint8
}

type SessionStarted struct{}

type SessionEnded struct{}

type FastestLap struct {
	VehicleIdx uint8 `json:"vehicleIdx"`

	// Lap time in seconds.
	LapTime float32 `json:"lapTime"`
}

type Retirement struct {
	VehicleIdx uint8 `json:"vehicleIdx"`
}

type DRSEnabled struct{}

type DRSDisabled struct{}

type TeamMateInPits struct {
	VehicleIdx uint8 `json:"vehicleIdx"`
}

type ChequeredFlag struct{}

type RaceWinner struct {
	VehicleIdx uint8 `json:"vehicleIdx"`
}

type Penalty struct {
	PenaltyType      uint8 `json:"penaltyType"`
	InfringementType uint8 `json:"infringementType"`

	// Vehicle the penalty is applied to, and the other vehicle involved.
	VehicleIdx      uint8 `json:"vehicleIdx"`
	OtherVehicleIdx uint8 `json:"otherVehicleIdx"`

	// Time gained or spent doing the action, in seconds.
	Time uint8 `json:"time"`

	LapNum       uint8 `json:"lapNum"`
	PlacesGained uint8 `json:"placesGained"`
}

type SpeedTrap struct {
	VehicleIdx uint8 `json:"vehicleIdx"`

	// Top speed through the trap in kilometres per hour.
	Speed float32 `json:"speed"`

	// 1 if this is the fastest speed in the session (overall, or for this driver).
	OverallFastestInSession uint8 `json:"overallFastestInSession"`
	DriverFastestInSession  uint8 `json:"driverFastestInSession"`
}

type StartLights struct {
	NumLights uint8 `json:"numLights"`
}

type LightsOut struct{}

type DriveThroughPenaltyServed struct {
	VehicleIdx uint8 `json:"vehicleIdx"`
}

type StopGoPenaltyServed struct {
	VehicleIdx uint8 `json:"vehicleIdx"`
}

type Flashback struct {
	// Frame and session time flashed back to.
	FrameIdentifier uint32  `json:"frameIdentifier"`
	SessionTime     float32 `json:"sessionTime"`
}

type Buttons struct {
	Status ButtonSet `json:"status"`
}

func (SessionStarted) isEventDetails()            {}
func (SessionEnded) isEventDetails()              {}
func (FastestLap) isEventDetails()                {}
func (Retirement) isEventDetails()                {}
func (DRSEnabled) isEventDetails()                {}
func (DRSDisabled) isEventDetails()               {}
func (TeamMateInPits) isEventDetails()            {}
func (ChequeredFlag) isEventDetails()             {}
func (RaceWinner) isEventDetails()                {}
func (Penalty) isEventDetails()                   {}
func (SpeedTrap) isEventDetails()                 {}
func (StartLights) isEventDetails()               {}
func (LightsOut) isEventDetails()                 {}
func (DriveThroughPenaltyServed) isEventDetails() {}
func (StopGoPenaltyServed) isEventDetails()       {}
func (Flashback) isEventDetails()                 {}
func (Buttons) isEventDetails()                   {}

func (e FastestLap) VehicleIndex() uint8                { return e.VehicleIdx }
func (e Retirement) VehicleIndex() uint8                { return e.VehicleIdx }
func (e TeamMateInPits) VehicleIndex() uint8            { return e.VehicleIdx }
func (e RaceWinner) VehicleIndex() uint8                { return e.VehicleIdx }
func (e Penalty) VehicleIndex() uint8                   { return e.VehicleIdx }
func (e SpeedTrap) VehicleIndex() uint8                 { return e.VehicleIdx }
func (e DriveThroughPenaltyServed) VehicleIndex() uint8 { return e.VehicleIdx }
func (e StopGoPenaltyServed) VehicleIndex() uint8       { return e.VehicleIdx }

// eventDetailsSize is the minimum number of bytes each code needs after the 4 byte code
//
//nolint:gochecknoglobals // lookup table
var eventDetailsSize = [...]int{
	EventCodeSessionStarted:     0,
	EventCodeSessionEnded:       0,
	EventCodeFastestLap:         5,
	EventCodeRetirement:         1,
	EventCodeDRSEnabled:         0,
	EventCodeDRSDisabled:        0,
	EventCodeTeamMateInPits:     1,
	EventCodeChequeredFlag:      0,
	EventCodeRaceWinner:         1,
	EventCodePenaltyIssued:      7,
	EventCodeSpeedTrapTriggered: 7,
	EventCodeStartLights:        1,
	EventCodeLightsOut:          0,
	EventCodeDriveThroughServed: 1,
	EventCodeStopGoServed:       1,
	EventCodeFlashback:          8,
	EventCodeButtonStatus:       4,
}

func parseEventDetails(code EventCode, r *reader) (EventDetails, error) {
	if int(code) >= len(eventDetailsSize) {
		return nil, fmt.Errorf("%w: unknown event code %d", ErrConversion, uint8(code))
	}

	if err := requireBytes(r, code.String()+" event", eventDetailsSize[code]); err != nil {
		return nil, err
	}

	switch code {
	case EventCodeSessionStarted:
		return SessionStarted{}, nil
	case EventCodeSessionEnded:
		return SessionEnded{}, nil
	case EventCodeFastestLap:
		return FastestLap{
			VehicleIdx: r.u8(),
			LapTime:    r.f32(),
		}, nil
	case EventCodeRetirement:
		return Retirement{VehicleIdx: r.u8()}, nil
	case EventCodeDRSEnabled:
		return DRSEnabled{}, nil
	case EventCodeDRSDisabled:
		return DRSDisabled{}, nil
	case EventCodeTeamMateInPits:
		return TeamMateInPits{VehicleIdx: r.u8()}, nil
	case EventCodeChequeredFlag:
		return ChequeredFlag{}, nil
	case EventCodeRaceWinner:
		return RaceWinner{VehicleIdx: r.u8()}, nil
	case EventCodePenaltyIssued:
		return Penalty{
			PenaltyType:      r.u8(),
			InfringementType: r.u8(),
			VehicleIdx:       r.u8(),
			OtherVehicleIdx:  r.u8(),
			Time:             r.u8(),
			LapNum:           r.u8(),
			PlacesGained:     r.u8(),
		}, nil
	case EventCodeSpeedTrapTriggered:
		return SpeedTrap{
			VehicleIdx:              r.u8(),
			Speed:                   r.f32(),
			OverallFastestInSession: r.u8(),
			DriverFastestInSession:  r.u8(),
		}, nil
	case EventCodeStartLights:
		return StartLights{NumLights: r.u8()}, nil
	case EventCodeLightsOut:
		return LightsOut{}, nil
	case EventCodeDriveThroughServed:
		return DriveThroughPenaltyServed{VehicleIdx: r.u8()}, nil
	case EventCodeStopGoServed:
		return StopGoPenaltyServed{VehicleIdx: r.u8()}, nil
	case EventCodeFlashback:
		return Flashback{
			FrameIdentifier: r.u32(),
			SessionTime:     r.f32(),
		}, nil
	case EventCodeButtonStatus:
		return Buttons{Status: NewButtonSet(r.u32())}, nil
	}

	return nil, fmt.Errorf("%w: unknown event code %d", ErrConversion, uint8(code))
}

func unmarshalEventDetails(code EventCode, raw json.RawMessage) (EventDetails, error) {
	switch code {
	case EventCodeSessionStarted:
		return unmarshalDetails[SessionStarted](raw)
	case EventCodeSessionEnded:
		return unmarshalDetails[SessionEnded](raw)
	case EventCodeFastestLap:
		return unmarshalDetails[FastestLap](raw)
	case EventCodeRetirement:
		return unmarshalDetails[Retirement](raw)
	case EventCodeDRSEnabled:
		return unmarshalDetails[DRSEnabled](raw)
	case EventCodeDRSDisabled:
		return unmarshalDetails[DRSDisabled](raw)
	case EventCodeTeamMateInPits:
		return unmarshalDetails[TeamMateInPits](raw)
	case EventCodeChequeredFlag:
		return unmarshalDetails[ChequeredFlag](raw)
	case EventCodeRaceWinner:
		return unmarshalDetails[RaceWinner](raw)
	case EventCodePenaltyIssued:
		return unmarshalDetails[Penalty](raw)
	case EventCodeSpeedTrapTriggered:
		return unmarshalDetails[SpeedTrap](raw)
	case EventCodeStartLights:
		return unmarshalDetails[StartLights](raw)
	case EventCodeLightsOut:
		return unmarshalDetails[LightsOut](raw)
	case EventCodeDriveThroughServed:
		return unmarshalDetails[DriveThroughPenaltyServed](raw)
	case EventCodeStopGoServed:
		return unmarshalDetails[StopGoPenaltyServed](raw)
	case EventCodeFlashback:
		return unmarshalDetails[Flashback](raw)
	case EventCodeButtonStatus:
		return unmarshalDetails[Buttons](raw)
	}

	return nil, fmt.Errorf("%w: unknown event code %d", ErrConversion, uint8(code))
}

func unmarshalDetails[T EventDetails](raw json.RawMessage) (EventDetails, error) {
	var details T

	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, err
		}
	}

	return details, nil
}
