package analysis

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain japanese", "かわいい猫", "かわいい猫"},
		{"forbidden chars stripped", `夕日/海岸:写真?`, "夕日海岸写真"},
		{"spaces to underscores", "sunny beach day", "sunny_beach_day"},
		{"space runs collapse", "a  b", "a_b"},
		{"ideographic space", "猫　写真", "猫_写真"},
		{"corner brackets stripped", "「猫」の『写真』", "猫の写真"},
		{"trimmed before processing", "  猫  ", "猫"},
		{"capped at 20 runes", "あいうえおかきくけこさしすせそたちつてとなに", "あいうえおかきくけこさしすせそたちつてと"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
