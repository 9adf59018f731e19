package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "Valid password", password: "campus-meal-2024"},
		{name: "Empty password", password: "", wantErr: ErrEmptyPassword},
		{name: "Too long", password: strings.Repeat("a", 73), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := hashService.HashPassword(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)
				return
			}
			assert.NoError(t, err)
			assert.NotEqual(t, tt.password, hashed)
			cost, err := bcrypt.Cost([]byte(hashed))
			assert.NoError(t, err)
			assert.Equal(t, bcrypt.MinCost, cost)
		})
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hashed, err := (&HashService{}).HashPassword("campus-meal-2024")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestComparePassword(t *testing.T) {
	hashService := &HashService{Cost: bcrypt.MinCost}
	hashed, err := hashService.HashPassword("campus-meal-2024")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		hashed   string
		password string
		want     bool
	}{
		{name: "Matching password", hashed: hashed, password: "campus-meal-2024", want: true},
		{name: "Wrong password", hashed: hashed, password: "campus-meal-2025", want: false},
		{name: "No stored hash", hashed: "", password: "campus-meal-2024", want: false},
		{name: "Corrupt hash", hashed: "not-a-hash", password: "campus-meal-2024", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hashService.ComparePassword(tt.hashed, tt.password))
		})
	}
}
