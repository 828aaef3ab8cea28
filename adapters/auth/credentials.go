package auth

import (
	"strings"

	"github.com/artpar/admingate/ports"
)

// Account is one configured admin login.
type Account struct {
	Email        string
	PasswordHash []byte
	Role         string
}

// Authenticator checks login credentials against configured accounts.
type Authenticator struct {
	accounts map[string]Account
	hasher   ports.Hasher
}

// NewAuthenticator creates an authenticator over a fixed account set.
func NewAuthenticator(accounts []Account, hasher ports.Hasher) *Authenticator {
	byEmail := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byEmail[strings.ToLower(a.Email)] = a
	}
	return &Authenticator{accounts: byEmail, hasher: hasher}
}

// Authenticate verifies an email/password pair. Returns the admin
// identity and true on success.
func (a *Authenticator) Authenticate(email, password string) (ports.CurrentAdmin, bool) {
	account, ok := a.accounts[strings.ToLower(email)]
	if !ok {
		// Compare against an empty hash anyway so lookup misses and
		// password misses take comparable time.
		a.hasher.Compare(nil, password)
		return ports.CurrentAdmin{}, false
	}
	if !a.hasher.Compare(account.PasswordHash, password) {
		return ports.CurrentAdmin{}, false
	}
	return ports.CurrentAdmin{Email: account.Email, Role: account.Role}, true
}
