package model

// Scope is the coarse authorization tier attached to users, clients and
// issued tokens. There are exactly two tiers.
type Scope string

const (
	ScopeCustomer Scope = "customer"
	ScopeOperator Scope = "operator"
)

func (s Scope) Valid() bool {
	return s == ScopeCustomer || s == ScopeOperator
}

func (s Scope) String() string {
	return string(s)
}

// ParseScope maps a raw string onto a Scope. An empty string stays empty so
// callers can apply their own fallback chain.
func ParseScope(raw string) (Scope, bool) {
	switch Scope(raw) {
	case ScopeCustomer:
		return ScopeCustomer, true
	case ScopeOperator:
		return ScopeOperator, true
	case "":
		return "", true
	default:
		return "", false
	}
}
