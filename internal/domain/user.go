package domain

// CredentialUnset marks a user whose login credential has not been set yet.
// Such users exist but cannot authenticate until an administrator assigns one.
const CredentialUnset = "!unset"

type User struct {
	ID            string
	Name          string
	Credential    string
	IsAdmin       bool
	IsMasterAdmin bool
	CreatedAt     int64
}

func (u *User) ValidateName() error {
	return validateName("user", u.Name)
}

// HasCredential reports whether the user can authenticate.
func (u *User) HasCredential() bool {
	return u.Credential != "" && u.Credential != CredentialUnset
}
