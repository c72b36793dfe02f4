package cart

import (
	"errors"
	"fmt"
)

// ValidationError reports a contract violation on a cart operation, such as
// adding a book the caller should have checked was in stock. The session is
// left unchanged.
type ValidationError struct {
	Op     string
	BookID string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: book %q: %s", e.Op, e.BookID, e.Reason)
}

// IsValidation reports whether err is a cart ValidationError, unwrapping as
// needed.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrEmptyCart is returned by Checkout when there is nothing to check out.
var ErrEmptyCart = errors.New("cart is empty")
