package catalog

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Rings", "rings"},
		{"spaces to hyphens", "Necklace Sets", "necklace-sets"},
		{"mixed case and symbols", "Gold & Silver!", "gold-silver"},
		{"leading and trailing space", "  Earrings  ", "earrings"},
		{"numeric", "02 Rings", "02-rings"},
		{"symbols only", "!!!", FallbackKey},
		{"empty", "", FallbackKey},
		{"hyphen runs collapse", "a -- b", "a-b"},
	}

	valid := regexp.MustCompile(`^[a-z0-9-]+$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got == "" || !valid.MatchString(got) {
				t.Errorf("Slugify(%q) = %q, not a valid non-empty slug", tt.in, got)
			}
			if again := Slugify(got); again != got {
				t.Errorf("Slugify not idempotent: Slugify(%q) = %q", got, again)
			}
		})
	}
}

func TestStripOrderPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"02-rings", "rings"},
		{"rings", "rings"},
		{"10-necklace-sets", "necklace-sets"},
		{"1-2-rings", "2-rings"},
		{"-rings", "-rings"},
	}

	for _, tt := range tests {
		if got := StripOrderPrefix(tt.in); got != tt.want {
			t.Errorf("StripOrderPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
