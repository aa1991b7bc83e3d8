package as5600

import (
	"errors"
	"testing"
)

func TestConfFieldSetGetRoundTrip(t *testing.T) {
	fields := []ConfField{PowerMode, Hysteresis, OutputStage, PWMFrequency, SlowFilter, FastFilterThreshold, Watchdog}
	for _, f := range fields {
		for v := uint16(0); v < 1<<f.width; v++ {
			word, err := f.Set(0x2AAA, v)
			if err != nil {
				t.Fatalf("%s: Set(%d): %v", f.Name(), v, err)
			}
			if got := f.Get(word); got != v {
				t.Errorf("%s: Get after Set(%d) = %d", f.Name(), v, got)
			}
		}
	}
}

func TestConfFieldSetIdempotent(t *testing.T) {
	once, err := SlowFilter.Set(0x1F3C, 2)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	twice, err := SlowFilter.Set(once, 2)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if once != twice {
		t.Errorf("second Set changed word: 0x%04X != 0x%04X", twice, once)
	}
}

func TestConfFieldSetIsolatesOtherFields(t *testing.T) {
	fields := []ConfField{PowerMode, Hysteresis, OutputStage, PWMFrequency, SlowFilter, FastFilterThreshold, Watchdog}
	for _, words := range []uint16{0x0000, 0x3FFF, 0x15A5} {
		for _, fa := range fields {
			for va := uint16(0); va < 1<<fa.width; va++ {
				updated, err := fa.Set(words, va)
				if err != nil {
					t.Fatalf("%s: Set(%d): %v", fa.Name(), va, err)
				}
				for _, fb := range fields {
					if fb.name == fa.name {
						continue
					}
					if before, after := fb.Get(words), fb.Get(updated); before != after {
						t.Errorf("setting %s=%d on 0x%04X changed %s: %d -> %d",
							fa.Name(), va, words, fb.Name(), before, after)
					}
				}
			}
		}
	}
}

func TestConfFieldSetRejectsOversizedValue(t *testing.T) {
	cases := []struct {
		f ConfField
		v uint16
	}{
		{SlowFilter, 4},
		{FastFilterThreshold, 8},
		{PowerMode, 4},
		{Watchdog, 2},
	}
	for _, c := range cases {
		word, err := c.f.Set(0x0123, c.v)
		if !errors.Is(err, ErrFieldRange) {
			t.Errorf("%s: Set(%d) err = %v, want ErrFieldRange", c.f.Name(), c.v, err)
		}
		if word != 0x0123 {
			t.Errorf("%s: rejected Set modified word to 0x%04X", c.f.Name(), word)
		}
	}
}
