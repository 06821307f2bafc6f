package mailroute

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorCategory
	}{
		{429, ErrorTransient},
		{500, ErrorTransient},
		{503, ErrorTransient},
		{400, ErrorUserInput},
		{404, ErrorUserInput},
		{422, ErrorUserInput},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{418, ErrorPermanent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeStatus(tt.code))
		})
	}
}

func TestError(t *testing.T) {
	t.Run("message includes cause", func(t *testing.T) {
		err := NewError(ErrorTransient, "rate limited", 429, errors.New("slow down"))
		assert.Equal(t, "rate limited: slow down", err.Error())
	})

	t.Run("message not duplicated when cause matches", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewError(ErrorPermanent, cause.Error(), 0, cause)
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("unwrap reaches cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewError(ErrorPermanent, "wrapped", 0, cause)
		assert.ErrorIs(t, err, cause)
	})
}

func TestCategoryOf(t *testing.T) {
	t.Run("through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewError(ErrorUserInput, "bad", 400, nil))
		cat, ok := CategoryOf(err)
		assert.True(t, ok)
		assert.Equal(t, ErrorUserInput, cat)
	})

	t.Run("uncategorized", func(t *testing.T) {
		_, ok := CategoryOf(errors.New("plain"))
		assert.False(t, ok)
		assert.False(t, IsTransient(errors.New("plain")))
	})

	t.Run("transient", func(t *testing.T) {
		assert.True(t, IsTransient(NewError(ErrorTransient, "x", 503, nil)))
	})
}

func TestRetryAfterOf(t *testing.T) {
	err := &Error{Msg: "slow", Cat: ErrorTransient, Code: 429, RetryDelay: 3 * time.Second}
	assert.Equal(t, 3*time.Second, RetryAfterOf(fmt.Errorf("wrap: %w", err)))
	assert.Zero(t, RetryAfterOf(errors.New("plain")))
}

func TestGenerationError(t *testing.T) {
	err := &GenerationError{Op: "choose", Err: fmt.Errorf("%w: got %q", ErrNonConforming, "maybe")}

	assert.Equal(t, `generation choose failed: response does not conform to schema: got "maybe"`, err.Error())
	assert.ErrorIs(t, err, ErrNonConforming)

	var ge *GenerationError
	assert.True(t, errors.As(fmt.Errorf("step: %w", err), &ge))
	assert.Equal(t, "choose", ge.Op)
}
