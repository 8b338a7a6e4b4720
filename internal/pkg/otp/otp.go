package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"prompt_market/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// OTPService issues and verifies email sign-in codes.
type OTPService interface {
	Send(email string) (string, error)
	Verify(email, code string) bool
}

type otpService struct {
	rdb *redis.Client
}

func NewOTPService(rdb *redis.Client) OTPService {
	return &otpService{rdb: rdb}
}

// Send generates a sign-in code and stores it in redis for 5 minutes.
// A real deployment hands the code to the mail provider; here it is logged.
func (s *otpService) Send(email string) (string, error) {
	// Resend throttle: with a 5 minute TTL, more than 4 minutes remaining
	// means the previous code is less than a minute old.
	key := fmt.Sprintf("signin:%s", email)
	ttl, err := s.rdb.TTL(context.Background(), key).Result()
	if err == nil && ttl > 4*time.Minute {
		return "", fmt.Errorf("please wait before sending again")
	}

	code := config.GlobalConfig.App.TestMailCode
	if code == "" {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		code = fmt.Sprintf("%06d", n.Int64())
	}

	if err := s.rdb.Set(context.Background(), key, code, 5*time.Minute).Err(); err != nil {
		return "", err
	}

	log.Printf("[SignInCode] Sending code %s to %s", code, email)

	return code, nil
}

// Verify checks the code and deletes it on success to prevent replay.
func (s *otpService) Verify(email, code string) bool {
	key := fmt.Sprintf("signin:%s", email)
	val, err := s.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}

	if val == code {
		s.rdb.Del(context.Background(), key)
		return true
	}

	return false
}
