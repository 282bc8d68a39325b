package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Lowercases", input: "DELL", expected: "dell"},
		{name: "Strips accents", input: "Café", expected: "cafe"},
		{name: "Spanish names", input: "Muñoz Pérez", expected: "munoz perez"},
		{name: "Trims whitespace", input: "  hp  ", expected: "hp"},
		{name: "Empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		fields   []string
		expected bool
	}{
		{name: "Accent-insensitive hit", query: "cafe", fields: []string{"Café Corp"}, expected: true},
		{name: "Accented query against plain field", query: "pérez", fields: []string{"Juan Perez"}, expected: true},
		{name: "Case-insensitive substring", query: "xps", fields: []string{"Dell", "XPS 13"}, expected: true},
		{name: "No hit", query: "lenovo", fields: []string{"Dell", "XPS 13"}, expected: false},
		{name: "Empty query matches everything", query: "", fields: []string{"anything"}, expected: true},
		{name: "Empty fields", query: "dell", fields: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.query, tt.fields...); got != tt.expected {
				t.Errorf("Matches(%q, %v) = %v, want %v", tt.query, tt.fields, got, tt.expected)
			}
		})
	}
}
