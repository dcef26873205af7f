package input

import (
	"fmt"

	"github.com/dshills/keyroute/internal/input/key"
)

// BadKeyError reports a key code outside the key tables. The platform
// layer must never produce one.
type BadKeyError struct {
	Code key.Code
}

func (e *BadKeyError) Error() string {
	return fmt.Sprintf("dispatch: bad key %d", int(e.Code))
}
