package token

import "testing"

func TestParseMeasure(t *testing.T) {
	for in, want := range map[string]Measure{"": MeasureChars, "chars": MeasureChars, "CELLS": MeasureCells} {
		got, err := ParseMeasure(in)
		if err != nil || got != want {
			t.Errorf("ParseMeasure(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMeasure("bytes"); err == nil {
		t.Error("expected error for unknown measure")
	}
}

func TestMeasureWidth(t *testing.T) {
	if w := MeasureChars.Width("naïve"); w != 5 {
		t.Errorf("chars width = %d, want 5", w)
	}
	if w := MeasureCells.Width("ｗｉｄｅ"); w != 8 {
		t.Errorf("cells width = %d, want 8", w)
	}
}
