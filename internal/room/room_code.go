package room

import (
	"math/rand"
)

const codeLength = 4
const maxRetries = 100

// Letters that are easy to read aloud; I and O are left out.
var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

// GenerateCode creates a random 4-letter uppercase room code that is not
// already taken.
func GenerateCode(taken func(code string) bool) string {
	for i := 0; i < maxRetries; i++ {
		code := randomCode()
		if !taken(code) {
			return code
		}
	}
	// Fallback: extremely unlikely with 24^4 = 331,776 combinations
	return randomCode()
}

func randomCode() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
