package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasherWithCost(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse" {
		t.Error("Hash() returned the plaintext password")
	}

	if !hasher.Verify("correct horse", hash) {
		t.Error("Verify() = false for the right password")
	}
	if hasher.Verify("battery staple", hash) {
		t.Error("Verify() = true for a wrong password")
	}
}

func TestPasswordHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "default", cost: DefaultBcryptCost, want: DefaultBcryptCost},
		{name: "minimum", cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{name: "too low", cost: 1, want: bcrypt.DefaultCost},
		{name: "too high", cost: 99, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPasswordHasherWithCost(tt.cost).cost; got != tt.want {
				t.Errorf("cost = %d, want %d", got, tt.want)
			}
		})
	}
}
