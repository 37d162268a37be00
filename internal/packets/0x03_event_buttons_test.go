package packets

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestNewButtonSet(t *testing.T) {
	testCases := []struct {
		name  string
		mask  uint32
		want  []ButtonFlag
		print string
	}{
		{name: "Single", mask: 0x00000001, want: []ButtonFlag{ButtonA}, print: "{A}"},
		{name: "Pair", mask: 0x00001001, want: []ButtonFlag{ButtonA, ButtonRT}, print: "{A,RT}"},
		{name: "Empty", mask: 0, want: []ButtonFlag{}, print: "{}"},
		{name: "UndefinedBitsOnly", mask: 1 << 31, want: []ButtonFlag{}, print: "{}"},
		{name: "Special", mask: 0x00080000, want: []ButtonFlag{ButtonSpecial}, print: "{Special}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			set := NewButtonSet(tc.mask)
			if got := set.Flags(); !slices.Equal(got, tc.want) {
				t.Fatalf("Flags() = %v, want %v", got, tc.want)
			}

			if got := set.String(); got != tc.print {
				t.Fatalf("String() = %q, want %q", got, tc.print)
			}

			if set.Len() != len(tc.want) {
				t.Fatalf("Len() = %d, want %d", set.Len(), len(tc.want))
			}
		})
	}
}

func TestButtonSetAllBits(t *testing.T) {
	set := NewButtonSet(0xFFFFFFFF)

	if set.Len() != MaxButtonBits {
		t.Fatalf("Len() = %d, want %d", set.Len(), MaxButtonBits)
	}

	if set.Mask() != 0x000FFFFF {
		t.Fatalf("Mask() = %#x, want 0xfffff", set.Mask())
	}

	for bit := range MaxButtonBits {
		if !set.Has(ButtonFlag(1 << bit)) {
			t.Fatalf("Has(%s) = false", ButtonFlag(1<<bit))
		}
	}

	if set.Has(ButtonFlag(1 << 20)) {
		t.Fatal("Has(1<<20) = true for an undefined bit")
	}
}

func TestButtonSetEquality(t *testing.T) {
	if ButtonSetOf(ButtonRT, ButtonA) != ButtonSetOf(ButtonA, ButtonRT) {
		t.Fatal("sets differ by insertion order")
	}

	if NewButtonSet(0x80001001) != ButtonSetOf(ButtonA, ButtonRT) {
		t.Fatal("undefined bits are part of the set")
	}

	if NewButtonSet(0x1) == NewButtonSet(0x2) {
		t.Fatal("different sets compare equal")
	}
}

func TestButtonSetJSON(t *testing.T) {
	want := ButtonSetOf(ButtonDpadUp, ButtonLB, ButtonRightStickDown)

	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	if string(data) != `["DpadUp","LB","RightStickDown"]` {
		t.Fatalf("json.Marshal() = %s", data)
	}

	var got ButtonSet
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if got != want {
		t.Fatalf("json.Unmarshal() = %s, want %s", got, want)
	}

	if err := json.Unmarshal([]byte(`["A","Turbo"]`), &got); !errors.Is(err, ErrConversion) {
		t.Fatalf("json.Unmarshal() error = %v, want %v", err, ErrConversion)
	}
}

func TestButtonFlagString(t *testing.T) {
	if got := ButtonLeftStickClick.String(); got != "LeftStickClick" {
		t.Fatalf("String() = %q, want LeftStickClick", got)
	}

	if got := (ButtonA | ButtonB).String(); got != "ButtonFlag(0x00000005)" {
		t.Fatalf("String() = %q, want ButtonFlag(0x00000005)", got)
	}
}
