package names

import "testing"

func TestIsIP(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"192.0.2.1", true},
		{"10.0.0.1", true},
		{"2001:db8::1", true},
		{"2001:DB8::1", true},
		{"::1", true},
		{"203.0.113.0/24", true},
		{"2001:db8::/32", true},
		{"192.0.2.1-192.0.2.8", true},
		{"192.0.2.1 - 192.0.2.8", true},
		{"2001:db8::1-2001:db8::ff", true},
		{" 192.0.2.1 ", true},

		{"", false},
		{"Alice", false},
		{"Bob123", false},
		{"192.0.2", false},
		{"192.0.2.256", false},
		{"Jean-Luc Picard", false},
		{"1.2.3.4.5", false},
		{"192.0.2.1/", false},
		{"/24", false},
		{"example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIP(tt.name); got != tt.want {
				t.Errorf("IsIP(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
