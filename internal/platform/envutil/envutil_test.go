package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("TEST_STR", "  value  ")
	if got := String("TEST_STR", "def"); got != "value" {
		t.Fatalf("got %q", got)
	}
	if got := String("TEST_STR_UNSET", "def"); got != "def" {
		t.Fatalf("got %q", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := Int("TEST_INT", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("TEST_INT_BAD", "nope")
	if got := Int("TEST_INT_BAD", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestBool(t *testing.T) {
	for raw, want := range map[string]bool{"1": true, "true": true, "YES": true, "on": true, "0": false, "nah": false} {
		t.Setenv("TEST_BOOL", raw)
		if got := Bool("TEST_BOOL", false); got != want {
			t.Fatalf("Bool(%q): got %v", raw, got)
		}
	}
	if !Bool("TEST_BOOL_UNSET", true) {
		t.Fatalf("default not honored")
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	if got := Float("TEST_FLOAT", 0.1); got != 0.25 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TEST_FLOAT_BAD", "lots")
	if got := Float("TEST_FLOAT_BAD", 0.1); got != 0.1 {
		t.Fatalf("got %v", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "90s")
	if got := Duration("TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TEST_DUR_BAD", "ninety")
	if got := Duration("TEST_DUR_BAD", time.Second); got != time.Second {
		t.Fatalf("got %v", got)
	}
}

func TestInts(t *testing.T) {
	t.Setenv("TEST_INTS", " 0, 1 ,2,junk")
	if got := Ints("TEST_INTS", nil); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("got %v", got)
	}
	if got := Ints("TEST_INTS_UNSET", []int{9}); !reflect.DeepEqual(got, []int{9}) {
		t.Fatalf("got %v", got)
	}
	t.Setenv("TEST_INTS_EMPTY", "junk,more")
	if got := Ints("TEST_INTS_EMPTY", []int{5}); !reflect.DeepEqual(got, []int{5}) {
		t.Fatalf("got %v", got)
	}
}

func TestStrings(t *testing.T) {
	t.Setenv("TEST_STRS", "a, b ,,c")
	if got := Strings("TEST_STRS", nil); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}
	if got := Strings("TEST_STRS_UNSET", []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("got %v", got)
	}
}
