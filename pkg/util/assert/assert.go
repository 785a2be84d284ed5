package assert

import (
	"fmt"
	"reflect"
	"testing"
)

// Equal errors if actual is not equal to expected.  Integers are compared by
// value irrespective of their width or signedness, hence an untyped constant
// can be checked directly against a byte, a register index or an address.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()
	//
	if reflect.DeepEqual(expected, actual) || intEqual(expected, actual) {
		return
	}
	//
	t.Errorf("expected: %s, actual: %s", format(expected), format(actual))
	fail(t, msg)
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if condition {
		return
	}
	//
	t.Errorf("condition is false")
	fail(t, msg)
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if !condition {
		return
	}
	//
	t.Errorf("condition is true")
	fail(t, msg)
}

// Report an optional formatted message, and then stop the test.
func fail(t *testing.T, msg []any) {
	t.Helper()
	//
	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}
	//
	t.FailNow()
}

// Bytes are shown alongside their bit pattern, since that is how they appear
// in a rendered image.
func format(x any) string {
	if b, ok := x.(uint8); ok {
		return fmt.Sprintf("%d (%08b)", b, b)
	}
	//
	return fmt.Sprintf("%v", x)
}

// intEqual returns true if expected and actual are both integers of the same
// value.
func intEqual(expected, actual any) bool {
	an, a, aok := asInteger(expected)
	bn, b, bok := asInteger(actual)
	//
	return aok && bok && an == bn && a == b
}

// asInteger splits an integer value of any kind into its sign and magnitude.
func asInteger(x any) (bool, uint64, bool) {
	if x == nil {
		return false, 0, false
	}
	//
	v := reflect.ValueOf(x)
	//
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := v.Int(); i < 0 {
			return true, uint64(-i), true
		}
		//
		return false, uint64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false, v.Uint(), true
	}
	//
	return false, 0, false
}
