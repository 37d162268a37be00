package packets

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// MaxButtonBits is the number of button bits with a defined meaning.
	MaxButtonBits = 20

	knownButtonsMask uint32 = 1<<MaxButtonBits - 1
)

type ButtonFlag uint32

const (
	ButtonA               ButtonFlag = 0x00000001
	ButtonY               ButtonFlag = 0x00000002
	ButtonB               ButtonFlag = 0x00000004
	ButtonX               ButtonFlag = 0x00000008
	ButtonDpadLeft        ButtonFlag = 0x00000010
	ButtonDpadRight       ButtonFlag = 0x00000020
	ButtonDpadUp          ButtonFlag = 0x00000040
	ButtonDpadDown        ButtonFlag = 0x00000080
	ButtonOptions         ButtonFlag = 0x00000100
	ButtonLB              ButtonFlag = 0x00000200
	ButtonRB              ButtonFlag = 0x00000400
	ButtonLT              ButtonFlag = 0x00000800
	ButtonRT              ButtonFlag = 0x00001000
	ButtonLeftStickClick  ButtonFlag = 0x00002000
	ButtonRightStickClick ButtonFlag = 0x00004000
	ButtonRightStickLeft  ButtonFlag = 0x00008000
	ButtonRightStickRight ButtonFlag = 0x00010000
	ButtonRightStickUp    ButtonFlag = 0x00020000
	ButtonRightStickDown  ButtonFlag = 0x00040000
	ButtonSpecial         ButtonFlag = 0x00080000
)

// indexed by bit position
//
//nolint:gochecknoglobals // lookup table
var buttonNames = [MaxButtonBits]string{
	"A",
	"Y",
	"B",
	"X",
	"DpadLeft",
	"DpadRight",
	"DpadUp",
	"DpadDown",
	"Options",
	"LB",
	"RB",
	"LT",
	"RT",
	"LeftStickClick",
	"RightStickClick",
	"RightStickLeft",
	"RightStickRight",
	"RightStickUp",
	"RightStickDown",
	"Special",
}

func (f ButtonFlag) String() string {
	if bits.OnesCount32(uint32(f)) != 1 || uint32(f)&knownButtonsMask == 0 {
		return fmt.Sprintf("ButtonFlag(0x%08X)", uint32(f))
	}

	return buttonNames[bits.TrailingZeros32(uint32(f))]
}

// ButtonSet is the set of buttons held down in a button status event. Only the 20 defined
// bits are kept, so two sets are equal (==) exactly when they hold the same buttons.
type ButtonSet struct {
	mask uint32
}

// NewButtonSet builds a set from a wire bitmask. Undefined bits are dropped.
func NewButtonSet(mask uint32) ButtonSet {
	return ButtonSet{mask: mask & knownButtonsMask}
}

// ButtonSetOf builds a set holding the given flags.
func ButtonSetOf(flags ...ButtonFlag) ButtonSet {
	var mask uint32
	for _, flag := range flags {
		mask |= uint32(flag)
	}

	return NewButtonSet(mask)
}

func (s ButtonSet) Has(flag ButtonFlag) bool {
	return uint32(flag)&knownButtonsMask != 0 && s.mask&uint32(flag) == uint32(flag)
}

func (s ButtonSet) Len() int {
	return bits.OnesCount32(s.mask)
}

// Mask returns the set as a bitmask of the defined bits.
func (s ButtonSet) Mask() uint32 {
	return s.mask
}

// Flags lists the set members in bit order.
func (s ButtonSet) Flags() []ButtonFlag {
	flags := make([]ButtonFlag, 0, s.Len())
	for bit := 0; bit < MaxButtonBits; bit++ {
		if s.mask&(1<<bit) != 0 {
			flags = append(flags, ButtonFlag(1<<bit))
		}
	}

	return flags
}

func (s ButtonSet) String() string {
	names := make([]string, 0, s.Len())
	for _, flag := range s.Flags() {
		names = append(names, flag.String())
	}

	return "{" + strings.Join(names, ",") + "}"
}

func (s ButtonSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, s.Len())
	for _, flag := range s.Flags() {
		names = append(names, flag.String())
	}

	return json.Marshal(names)
}

func (s *ButtonSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	var mask uint32

	for _, name := range names {
		bit := -1
		for i, known := range buttonNames {
			if known == name {
				bit = i
				break
			}
		}

		if bit < 0 {
			return fmt.Errorf("%w: unknown button %q", ErrConversion, name)
		}

		mask |= 1 << bit
	}

	s.mask = mask
	return nil
}
