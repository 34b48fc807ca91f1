package instance

import "github.com/google/uuid"

// epoch identifies this process lifetime. Tokens minted by a previous
// process carry a different epoch and are rejected, forcing re-login after
// a restart.
var epoch = uuid.NewString()

// Epoch returns the identifier minted at process start.
func Epoch() string {
	return epoch
}
