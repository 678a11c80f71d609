package brochure_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/brochure"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := brochure.Errorf(brochure.EINVALID, "bad %s", "input")
	assert.Equal(t, brochure.EINVALID, err.Code)
	assert.Equal(t, "bad input", err.Message)
	assert.Equal(t, "brochure error: code=invalid message=bad input", err.Error())
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := brochure.Errorf(brochure.ENOTFOUND, "missing")
		assert.Equal(t, brochure.ENOTFOUND, brochure.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("context: %w", brochure.Errorf(brochure.EPARSE, "bad html"))
		assert.Equal(t, brochure.EPARSE, brochure.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, brochure.EINTERNAL, brochure.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", brochure.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := brochure.Errorf(brochure.ECONFIG, "missing key")
		assert.Equal(t, "missing key", brochure.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", brochure.ErrorMessage(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", brochure.ErrorMessage(nil))
	})
}

func TestErrorRetryAfter(t *testing.T) {
	t.Parallel()

	t.Run("carries hint", func(t *testing.T) {
		t.Parallel()
		err := &brochure.Error{Code: brochure.ERATELIMIT, RetryAfter: 5 * time.Second}
		assert.Equal(t, 5*time.Second, brochure.ErrorRetryAfter(err))
	})

	t.Run("no hint", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, time.Duration(0), brochure.ErrorRetryAfter(errors.New("boom")))
	})
}

func TestTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", brochure.Errorf(brochure.ENETWORK, "refused"), true},
		{"timeout", brochure.Errorf(brochure.ETIMEOUT, "deadline"), true},
		{"rate limit", brochure.Errorf(brochure.ERATELIMIT, "slow down"), true},
		{"server error", &brochure.Error{Code: brochure.EHTTPSTATUS, StatusCode: 503}, true},
		{"client error", &brochure.Error{Code: brochure.EHTTPSTATUS, StatusCode: 404}, false},
		{"auth", brochure.Errorf(brochure.EAUTH, "bad key"), false},
		{"parse", brochure.Errorf(brochure.EPARSE, "not html"), false},
		{"config", brochure.Errorf(brochure.ECONFIG, "missing"), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, brochure.Transient(tt.err))
		})
	}
}
