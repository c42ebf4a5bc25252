package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRandomClassCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := RandomClassCode()
		if err != nil {
			t.Fatalf("RandomClassCode: %v", err)
		}
		if len(code) != ClassCodeLength {
			t.Fatalf("code %q has length %d", code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(classCodeAlphabet, r) {
				t.Fatalf("code %q contains %q", code, r)
			}
		}
	}
}

func TestNewClassCode(t *testing.T) {
	ctx := context.Background()

	calls := 0
	code, err := NewClassCode(ctx, func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 3, nil
	})
	if err != nil || code == "" {
		t.Fatalf("NewClassCode = %q, %v", code, err)
	}
	if calls != 3 {
		t.Fatalf("exists called %d times, want 3", calls)
	}

	_, err = NewClassCode(ctx, func(ctx context.Context, code string) (bool, error) { return true, nil })
	if !errors.Is(err, ErrClassCodeExhausted) {
		t.Fatalf("err = %v, want ErrClassCodeExhausted", err)
	}

	boom := errors.New("db down")
	_, err = NewClassCode(ctx, func(ctx context.Context, code string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
