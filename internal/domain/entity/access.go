package entity

// AccessRequirement is what a protected surface demands of the session.
type AccessRequirement int

const (
	RequireAuthenticated AccessRequirement = iota
	RequireAdmin
)

// AccessDecision is the outcome of a guard evaluation.
type AccessDecision int

const (
	// AccessPending means the session is still loading; render nothing and re-evaluate later.
	AccessPending AccessDecision = iota
	AccessAllow
	AccessRedirectLogin
	AccessRedirectHome
)

// String returns a readable name for logs.
func (d AccessDecision) String() string {
	switch d {
	case AccessPending:
		return "pending"
	case AccessAllow:
		return "allow"
	case AccessRedirectLogin:
		return "redirect-login"
	case AccessRedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// AccessSession is the guard's view of the current session.
type AccessSession struct {
	Loading bool
	User    *User
}

// EvaluateAccess decides whether the session may enter a surface with the given requirement.
// It has no side effects.
func EvaluateAccess(session AccessSession, requirement AccessRequirement) AccessDecision {
	if session.Loading {
		return AccessPending
	}
	if session.User == nil {
		return AccessRedirectLogin
	}
	if requirement == RequireAdmin && !session.User.IsAdmin() {
		return AccessRedirectHome
	}

	return AccessAllow
}
