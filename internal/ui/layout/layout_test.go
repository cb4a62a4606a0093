package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{MinWidth, MinHeight, false},
		{MinWidth - 1, 30, true},
		{120, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", "ada", "Beginner", 100)
	for _, want := range []string{"DataPath", "Quiz", "ada", "Beginner"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	anon := RenderHeader("Login", "", "", 100)
	if strings.Contains(anon, "●") {
		t.Error("header should not show a user marker before login")
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}, {Key: "Esc", Description: "Back"}}, 80)
	for _, want := range []string{"Enter", "Select", "Esc", "Back"} {
		if !strings.Contains(f, want) {
			t.Errorf("footer missing %q", want)
		}
	}
}
