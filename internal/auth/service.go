package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns plain passwords into bcrypt digests. Tests lower Cost to bcrypt.MinCost.
type Hasher struct {
	Cost int
}

var DefaultHasher = Hasher{Cost: bcrypt.DefaultCost}

func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash plain password to hashed password: %w", err)
	}
	return string(hashedPassword), nil
}

func (h Hasher) Compare(hashedPwd string, plainPwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPwd), []byte(plainPwd)) == nil
}
