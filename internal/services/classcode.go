package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

// Ambiguous characters (0/O, 1/I) are left out so codes can be read aloud.
const classCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	ClassCodeLength   = 8
	classCodeAttempts = 10
)

var ErrClassCodeExhausted = errors.New("could not generate a unique class code")

func RandomClassCode() (string, error) {
	out := make([]byte, ClassCodeLength)
	max := big.NewInt(int64(len(classCodeAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = classCodeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// NewClassCode draws codes until exists reports one as unused.
func NewClassCode(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < classCodeAttempts; i++ {
		code, err := RandomClassCode()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrClassCodeExhausted
}
