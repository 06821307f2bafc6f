package google

import (
	"errors"
	"fmt"

	ai "github.com/spetersoncode/mailroute"
	"google.golang.org/genai"
)

// wrapError maps a genai.APIError onto a categorized mailroute error.
// genai.APIError does not expose response headers, so no Retry-After is set.
// Anything else is returned as-is and left to the retry heuristics.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewError(ai.CategorizeStatus(apiErr.Code), err.Error(), apiErr.Code, err)
}

// BlockedError indicates the prompt was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Reason)
}
