package anthropic

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/mailroute"
)

// wrapError maps an *anthropic.Error onto a categorized mailroute error.
// Anthropic reports overload as 529, which falls in the transient 5xx range.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	wrapped := ai.NewError(ai.CategorizeStatus(apiErr.StatusCode), err.Error(), apiErr.StatusCode, err)
	wrapped.RetryDelay = retryAfter(apiErr.Response)
	return wrapped
}

func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
