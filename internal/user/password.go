package user

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor used for every stored password.
const HashCost = bcrypt.DefaultCost

func HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, raw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
}
