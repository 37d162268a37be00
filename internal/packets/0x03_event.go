package packets

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	EventCodeSize = 4
)

type EventCode uint8

const (
	EventCodeSessionStarted EventCode = iota
	EventCodeSessionEnded
	EventCodeFastestLap
	EventCodeRetirement
	EventCodeDRSEnabled
	EventCodeDRSDisabled
	EventCodeTeamMateInPits
	EventCodeChequeredFlag
	EventCodeRaceWinner
	EventCodePenaltyIssued
	EventCodeSpeedTrapTriggered
	EventCodeStartLights
	EventCodeLightsOut
	EventCodeDriveThroughServed
	EventCodeStopGoServed
	EventCodeFlashback
	EventCodeButtonStatus
)

//nolint:gochecknoglobals // lookup table
var eventCodes = [...]string{
	EventCodeSessionStarted:     "SSTA",
	EventCodeSessionEnded:       "SEND",
	EventCodeFastestLap:         "FTLP",
	EventCodeRetirement:         "RTMT",
	EventCodeDRSEnabled:         "DRSE",
	EventCodeDRSDisabled:        "DRSD",
	EventCodeTeamMateInPits:     "TMPT",
	EventCodeChequeredFlag:      "CHQF",
	EventCodeRaceWinner:         "RCWN",
	EventCodePenaltyIssued:      "PENA",
	EventCodeSpeedTrapTriggered: "SPTP",
	EventCodeStartLights:        "STLG",
	EventCodeLightsOut:          "LGOT",
	EventCodeDriveThroughServed: "DTSV",
	EventCodeStopGoServed:       "SGSV",
	EventCodeFlashback:          "FLBK",
	EventCodeButtonStatus:       "BUTN",
}

// ParseEventCode converts a 4 character wire code into an EventCode. Codes outside the known
// table fail, even when they are well formed text.
func ParseEventCode(code []byte) (EventCode, error) {
	if len(code) != EventCodeSize {
		return 0, fmt.Errorf("%w: event code must be %d bytes, got %d", ErrConversion, EventCodeSize, len(code))
	}

	if !utf8.Valid(code) {
		return 0, fmt.Errorf("%w: event code %x is not text", ErrConversion, code)
	}

	for id, name := range eventCodes {
		if name == string(code) {
			return EventCode(id), nil //nolint:gosec // bounded by the table size
		}
	}

	return 0, fmt.Errorf("%w: unknown event code %q", ErrConversion, code)
}

func (c EventCode) String() string {
	if int(c) >= len(eventCodes) {
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}

	return eventCodes[c]
}

func (c EventCode) MarshalText() ([]byte, error) {
	if int(c) >= len(eventCodes) {
		return nil, fmt.Errorf("%w: unknown event code %d", ErrConversion, uint8(c))
	}

	return []byte(eventCodes[c]), nil
}

func (c *EventCode) UnmarshalText(text []byte) error {
	code, err := ParseEventCode(text)
	if err != nil {
		return err
	}

	*c = code
	return nil
}

// EventData is the payload of an event packet. The concrete Details type is selected by Code.
type EventData struct {
	Code    EventCode    `json:"code"`
	Details EventDetails `json:"details"`
}

func (EventData) isPayload() {}

func (e *EventData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code    EventCode       `json:"code"`
		Details json.RawMessage `json:"details"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := unmarshalEventDetails(raw.Code, raw.Details)
	if err != nil {
		return fmt.Errorf("failed to unmarshal %s event details: %w", raw.Code, err)
	}

	e.Code = raw.Code
	e.Details = details
	return nil
}

func parseEventPacket(r *reader) (EventData, error) {
	if err := requireBytes(r, "event code", EventCodeSize); err != nil {
		return EventData{}, err
	}

	code, err := ParseEventCode(r.next(EventCodeSize))
	if err != nil {
		return EventData{}, err
	}

	details, err := parseEventDetails(code, r)
	if err != nil {
		return EventData{}, err
	}

	return EventData{
		Code:    code,
		Details: details,
	}, nil
}
