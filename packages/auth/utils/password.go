package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GeneratePlayerPassword builds the initial credential handed to a newly
// approved member, of the form Eko<4 random alnum>-<year>.
func GeneratePlayerPassword() (string, error) {
	chars := make([]byte, 4)
	for i := range chars {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		chars[i] = passwordAlphabet[n.Int64()]
	}
	return fmt.Sprintf("Eko%s-%d", chars, time.Now().Year()), nil
}
