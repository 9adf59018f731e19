package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email  string `validate:"required,email"`
	Amount int64  `validate:"gt=0"`
	Kind   string `validate:"omitempty,oneof=small big"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name     string
		input    sample
		expected string
	}{
		{name: "Valid", input: sample{Email: "a@b.co", Amount: 1, Kind: "big"}},
		{name: "Missing email", input: sample{Amount: 1}, expected: "Email is required"},
		{name: "Bad email", input: sample{Email: "nope", Amount: 1}, expected: "Email must be a valid email"},
		{name: "Zero amount", input: sample{Email: "a@b.co"}, expected: "Amount must be greater than 0"},
		{name: "Bad kind", input: sample{Email: "a@b.co", Amount: 2, Kind: "huge"}, expected: "Kind must be one of [small big]"},
		{name: "Several failures", input: sample{Kind: "x"}, expected: "Email is required; Amount must be greater than 0; Kind must be one of [small big]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.expected == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.expected)
		})
	}
}
