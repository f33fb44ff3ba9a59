package models

import "testing"

func TestIsNil(t *testing.T) {
	tests := []struct {
		name string
		e    Entity
		want bool
	}{
		{"untyped nil", nil, true},
		{"nil currency", (*Currency)(nil), true},
		{"nil person", (*Person)(nil), true},
		{"nil report", (*GroupReport)(nil), true},
		{"nil line item", (*LineItem)(nil), true},
		{"empty person", &Person{}, false},
		{"reference", Ref[Person](1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNil(tt.e); got != tt.want {
				t.Errorf("IsNil(%T) = %v, want %v", tt.e, got, tt.want)
			}
		})
	}
}
