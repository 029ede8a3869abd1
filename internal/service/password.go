package service

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost стоимость bcrypt по умолчанию
const DefaultBcryptCost = 12

// PasswordHasher хеширует и проверяет пароли магазинов и поставщиков
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cost вне допустимого диапазона bcrypt заменяется на DefaultBcryptCost
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
