package market

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrRouteTooShort     = errors.New("market: route has fewer than 2 hops")
	ErrRouteDisconnected = errors.New("market: route hops do not chain")
	ErrRouteOpen         = errors.New("market: route does not return to start token")
	ErrCircularRoute     = errors.New("market: token repeats beyond allowed count")
)

// ValidateRoute is the structural check that must run before any arithmetic:
// the hops chain, the route closes back to its start, and no token appears
// more than maxSameTokenRepeats times (the closing return to the start token
// is counted, so the start token legally shows up repeats+1 times).
func ValidateRoute(route Route, maxSameTokenRepeats int) error {
	if len(route) < 2 {
		return ErrRouteTooShort
	}
	for i := 0; i < len(route)-1; i++ {
		if route[i].TokenOut != route[i+1].TokenIn {
			return ErrRouteDisconnected
		}
	}
	if route[len(route)-1].TokenOut != route.Start() {
		return ErrRouteOpen
	}
	counts := make(map[solana.PublicKey]int, len(route)+1)
	for _, hop := range route {
		counts[hop.TokenIn]++
	}
	counts[route[len(route)-1].TokenOut]++
	for token, count := range counts {
		allowed := maxSameTokenRepeats
		if token == route.Start() {
			allowed++
		}
		if count > allowed {
			return ErrCircularRoute
		}
	}
	return nil
}
