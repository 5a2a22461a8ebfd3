package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt with its default cost of 10. HashPassword surfaces the primitive's
// error instead of swallowing it; callers report a generic internal error and
// must never echo the plaintext back.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
