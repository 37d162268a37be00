package packets

import (
	"math"
	"reflect"
)

// Finite returns a copy of the packet with every NaN or infinite float replaced by zero, together
// with the number of values replaced. JSON has no representation for those values.
func (p Packet) Finite() (Packet, int) {
	replaced := zeroNonFinite(reflect.ValueOf(&p).Elem())
	return p, replaced
}

// zeroNonFinite walks v in place. v must be addressable. Interface values are copied before they
// are modified so the caller's payload is never touched.
func zeroNonFinite(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		if f := v.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			v.SetFloat(0)
			return 1
		}
	case reflect.Struct:
		replaced := 0
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				replaced += zeroNonFinite(v.Field(i))
			}
		}
		return replaced
	case reflect.Array:
		replaced := 0
		for i := range v.Len() {
			replaced += zeroNonFinite(v.Index(i))
		}
		return replaced
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}

		elem := reflect.New(v.Elem().Type()).Elem()
		elem.Set(v.Elem())

		replaced := zeroNonFinite(elem)
		if replaced > 0 {
			v.Set(elem)
		}
		return replaced
	}

	return 0
}
