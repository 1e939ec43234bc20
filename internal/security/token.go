// Package security keeps platform tokens and SMTP credentials out of logs and reports.
package security

import (
	"fmt"
	"os"
	"strings"
)

const (
	minTokenLengthForPartialMask = 8
	maskShowChars                = 4
	maskEmpty                    = "[empty]"
	maskRedacted                 = "[redacted]"
)

// SecureToken wraps a credential so that it never prints in clear.
// Every formatting verb goes through String, which masks the value.
//
//	token := NewSecureToken("ghp_secret123456")
//	fmt.Printf("%v", token) // [token:****3456]
type SecureToken struct {
	value string
}

// NewSecureToken creates a new SecureToken from a string value.
func NewSecureToken(token string) SecureToken {
	return SecureToken{value: strings.TrimSpace(token)}
}

// TokenFromEnv returns the first non-empty variable among names together with
// the name it was read from. Both results are empty when none is set.
func TokenFromEnv(names ...string) (SecureToken, string) {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return NewSecureToken(v), name
		}
	}
	return SecureToken{}, ""
}

// String implements fmt.Stringer and returns a masked representation.
func (t SecureToken) String() string {
	if t.value == "" {
		return maskEmpty
	}
	if len(t.value) < minTokenLengthForPartialMask {
		return maskRedacted
	}
	return fmt.Sprintf("[token:****%s]", t.value[len(t.value)-maskShowChars:])
}

// GoString implements fmt.GoStringer so %#v is masked too.
func (t SecureToken) GoString() string {
	return t.String()
}

// Value returns the clear token. Only pass it to an authentication layer.
func (t SecureToken) Value() string {
	return t.value
}

// IsEmpty returns true if the token is empty.
func (t SecureToken) IsEmpty() bool {
	return t.value == ""
}
