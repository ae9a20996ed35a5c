package testutil

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/molssi-seamm/anistep/pkg/errors"
)

// AssertEqual fails the test when expected and actual differ under
// deep equality.
func AssertEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("%snot equal:\n  expected: %+v\n  actual:   %+v", prefix(msgAndArgs...), expected, actual)
	}
}

// AssertTrue fails the test when value is false.
func AssertTrue(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()

	if !value {
		t.Errorf("%sexpected true", prefix(msgAndArgs...))
	}
}

// AssertNotNil fails the test when value is nil, including typed nils
// behind an interface.
func AssertNotNil(t *testing.T, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()

	if value == nil {
		t.Errorf("%sexpected a value, got nil", prefix(msgAndArgs...))
		return
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		if v.IsNil() {
			t.Errorf("%sexpected a value, got nil", prefix(msgAndArgs...))
		}
	}
}

// AssertContains fails the test when str does not contain substr.
func AssertContains(t *testing.T, str, substr string, msgAndArgs ...interface{}) {
	t.Helper()

	if !strings.Contains(str, substr) {
		t.Errorf("%s%q not found in:\n%s", prefix(msgAndArgs...), substr, str)
	}
}

// AssertError fails the test when err is nil.
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()

	if err == nil {
		t.Errorf("%sexpected an error, got nil", prefix(msgAndArgs...))
	}
}

// AssertNoError fails the test when err is non-nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()

	if err != nil {
		t.Errorf("%sunexpected error: %v", prefix(msgAndArgs...), err)
	}
}

// AssertErrorCode fails the test unless err carries the given code.
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode, msgAndArgs ...interface{}) {
	t.Helper()

	if err == nil {
		t.Errorf("%sexpected error code %s, got nil error", prefix(msgAndArgs...), code)
		return
	}
	if !errors.IsErrorCode(err, code) {
		t.Errorf("%sexpected error code %s, got %s: %v", prefix(msgAndArgs...), code, errors.GetErrorCode(err), err)
	}
}

// AssertMapEqual fails the test when the two string maps differ,
// reporting each missing, extra or mismatched key.
func AssertMapEqual(t *testing.T, expected, actual map[string]string, msgAndArgs ...interface{}) {
	t.Helper()

	for k, want := range expected {
		got, ok := actual[k]
		switch {
		case !ok:
			t.Errorf("%smissing key %q", prefix(msgAndArgs...), k)
		case got != want:
			t.Errorf("%skey %q = %q, want %q", prefix(msgAndArgs...), k, got, want)
		}
	}
	for k := range actual {
		if _, ok := expected[k]; !ok {
			t.Errorf("%sunexpected key %q", prefix(msgAndArgs...), k)
		}
	}
}

// AssertFileExists fails the test when path is not an existing file.
func AssertFileExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	if !FileExists(t, path) {
		t.Errorf("%sfile does not exist: %s", prefix(msgAndArgs...), path)
	}
}

// AssertDirExists fails the test when path is not an existing
// directory.
func AssertDirExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	if !DirExists(t, path) {
		t.Errorf("%sdirectory does not exist: %s", prefix(msgAndArgs...), path)
	}
}

// AssertNoFile fails the test when path exists.
func AssertNoFile(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s%s exists but should not", prefix(msgAndArgs...), path)
	}
}

// AssertFileContent fails the test unless path holds exactly the
// expected content.
func AssertFileContent(t *testing.T, path, expected string) {
	t.Helper()

	if !FileExists(t, path) {
		t.Fatalf("file does not exist: %s", path)
	}
	if actual := ReadFile(t, path); actual != expected {
		t.Errorf("content of %s:\n  expected: %q\n  actual:   %q", path, expected, actual)
	}
}

// prefix renders optional message arguments: a lone string, a format
// string with arguments, or values joined by spaces.
func prefix(msgAndArgs ...interface{}) string {
	switch len(msgAndArgs) {
	case 0:
		return ""
	case 1:
		return fmt.Sprint(msgAndArgs[0]) + "\n"
	}

	if format, ok := msgAndArgs[0].(string); ok && strings.Contains(format, "%") {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + "\n"
	}
	return strings.TrimSuffix(fmt.Sprintln(msgAndArgs...), "\n") + "\n"
}
