package alloc

import (
	"strings"

	"github.com/pkg/errors"
)

// ReusePolicy decides which free id Allocate hands out.
type ReusePolicy int

const (
	// ReuseFast always returns the smallest free id.
	ReuseFast ReusePolicy = iota
	// ReuseSlow walks a cursor round the domain, so a freed id is not handed
	// out again before every other id has had its turn.
	ReuseSlow
)

func (p ReusePolicy) String() string {
	switch p {
	case ReuseFast:
		return "fast"
	case ReuseSlow:
		return "slow"
	}
	return "unknown"
}

func ParseReusePolicy(s string) (ReusePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fast", "reusefast":
		return ReuseFast, nil
	case "slow", "reuseslow":
		return ReuseSlow, nil
	}
	return 0, errors.Errorf("unknown reuse policy %q", s)
}
