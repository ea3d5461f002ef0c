package catalog

import "testing"

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   bool
	}{
		{"Item 2", "Item 10", true},
		{"Item 10", "Item 2", false},
		{"a", "b", true},
		{"apple", "Banana", true},
		{"IMG2.jpg", "img10.jpg", true},
		{"photo", "photo 2", true},
		{"file1", "file1", false},
	}

	for _, tt := range tests {
		if got := naturalLess(tt.s1, tt.s2); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.s1, tt.s2, got, tt.want)
		}
	}
}
