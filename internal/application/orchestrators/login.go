package orchestrators

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPasscode is returned for any failed passcode check.
var ErrWrongPasscode = errors.New("incorrect passcode")

// CoachLoginDeps holds the bcrypt hash of the coach passcode, computed once
// at startup from configuration.
type CoachLoginDeps struct {
	PasscodeHash []byte
}

// HashPasscode hashes the configured coach passcode for later comparison.
// PRE: passcode is non-empty
// POST: Returns a bcrypt hash usable with ExecuteCoachLogin
func HashPasscode(passcode string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
}

// ExecuteCoachLogin checks the submitted passcode against the configured
// hash. This is a single-operator gate for the back office, not an account
// system: there is one passcode and one role.
// POST: Returns nil on a match, ErrWrongPasscode otherwise
func ExecuteCoachLogin(_ context.Context, passcode string, deps CoachLoginDeps) error {
	if len(deps.PasscodeHash) == 0 {
		return ErrWrongPasscode
	}
	if err := bcrypt.CompareHashAndPassword(deps.PasscodeHash, []byte(passcode)); err != nil {
		return ErrWrongPasscode
	}
	return nil
}
