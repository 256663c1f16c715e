package circle

import "errors"

// ErrCodeExhausted is returned when invite code generation keeps colliding
// with existing codes. With an 8-character alphanumeric space this should
// never happen in practice; the retry loop exists to honor the contract.
var ErrCodeExhausted = errors.New("could not generate a unique invite code")
