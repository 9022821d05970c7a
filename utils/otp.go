// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrTooManyAttempts is returned when an identifier exceeds its OTP
// budget for the hour.
var ErrTooManyAttempts = errors.New("too many OTP attempts")

// GenerateOTP generates a cryptographically random code of exactly six
// ASCII digits (leading zeros included).
func GenerateOTP() (string, error) {
	const digits = "0123456789"
	result := make([]byte, 6)
	for i := range result {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		result[i] = digits[num.Int64()]
	}
	return string(result), nil
}

// GenerateSessionToken generates an opaque bearer token with 256 bits of
// entropy. The token is a secret-equivalent credential.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// CheckOTPAttempts counts an attempt for the given scope/identifier pair
// and fails once the hourly budget is exceeded. A nil Redis client
// disables throttling rather than blocking the flow.
func CheckOTPAttempts(ctx context.Context, redisClient *redis.Client, scope, identifier string, limit int64) error {
	if redisClient == nil {
		return nil
	}

	key := fmt.Sprintf("otp_attempts:%s:%s", scope, identifier)
	attempts, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		// Throttling is best-effort; a Redis outage must not take the
		// login flow down with it.
		return nil
	}

	// Set expiry if first attempt
	if attempts == 1 {
		redisClient.Expire(ctx, key, 1*time.Hour)
	}

	if attempts > limit {
		return ErrTooManyAttempts
	}

	return nil
}
