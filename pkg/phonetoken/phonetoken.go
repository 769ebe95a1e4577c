// Package phonetoken issues short-lived numeric codes used to confirm
// ownership of a phone number.
package phonetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrExpired is returned when a code is checked after its expiry.
var ErrExpired = errors.New("phone token expired")

// Config holds generator configuration.
type Config struct {
	Issuer string
	TTL    time.Duration
}

// DefaultConfig returns 6-digit codes valid for three minutes.
func DefaultConfig() Config {
	return Config{
		Issuer: "dastarkhan",
		TTL:    3 * time.Minute,
	}
}

// Token is an issued code together with the secret needed to verify it.
type Token struct {
	Code      string
	Secret    string
	ExpiresAt time.Time
}

// Generator issues and verifies codes.
type Generator struct {
	cfg Config
}

// New creates a Generator.
func New(cfg Config) *Generator {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultConfig().Issuer
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    uint(g.cfg.TTL / time.Second),
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}

// Issue creates a fresh secret for phone and the code valid at now.
func (g *Generator) Issue(phone string, now time.Time) (Token, error) {
	opts := g.opts()
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.cfg.Issuer,
		AccountName: phone,
		Period:      opts.Period,
		Digits:      opts.Digits,
		Algorithm:   opts.Algorithm,
	})
	if err != nil {
		return Token{}, fmt.Errorf("generate secret: %w", err)
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), now, opts)
	if err != nil {
		return Token{}, fmt.Errorf("generate code: %w", err)
	}

	return Token{
		Code:      code,
		Secret:    key.Secret(),
		ExpiresAt: now.Add(g.cfg.TTL),
	}, nil
}

// Verify checks code against secret. It fails with ErrExpired after expiresAt.
func (g *Generator) Verify(code, secret string, expiresAt, now time.Time) (bool, error) {
	if now.After(expiresAt) {
		return false, ErrExpired
	}
	ok, err := totp.ValidateCustom(code, secret, now, g.opts())
	if err != nil {
		return false, nil
	}
	return ok, nil
}
