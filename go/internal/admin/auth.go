package admin

import (
	"crypto/subtle"
	"strings"
)

// Gate checks the shared admin pin.
type Gate struct {
	pin string
}

func NewGate(pin string) *Gate {
	return &Gate{pin: strings.TrimSpace(pin)}
}

// Check returns nil when presented matches the configured pin. An unset
// pin is a server configuration problem, not a bad credential.
func (g *Gate) Check(presented string) error {
	if g == nil || g.pin == "" {
		return newError(CategoryConfiguration, "server misconfigured: admin pin not set")
	}

	presented = strings.TrimSpace(presented)
	if presented == "" {
		return newError(CategoryAuthorization, "Missing pin")
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(g.pin)) != 1 {
		return newError(CategoryAuthorization, "Bad pin")
	}
	return nil
}
