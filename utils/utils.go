package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP generates a 6-digit OTP, uniform in [000000, 999999]
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the platform entropy source is broken
		panic(fmt.Sprintf("otp generation: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}
