package verification

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// InstitutionalSuffix is matched against the end of a normalized address.
// Subdomains such as mail.ucla.edu do not match.
const InstitutionalSuffix = "@ucla.edu"

const (
	maxLocalLength   = 64
	maxAddressLength = 254
)

var validate = validator.New()

// NormalizeEmail reports whether candidate is a syntactically valid address
// with an unquoted local part of at most 64 octets and a total length of at
// most 254 octets. It returns the address with the local part in NFC and the
// domain mapped through the IDNA lookup profile (which lowercases it).
func NormalizeEmail(candidate string) (string, bool) {
	if err := validate.Var(candidate, "required,email"); err != nil {
		return "", false
	}
	if len(candidate) > maxAddressLength {
		return "", false
	}

	at := strings.LastIndex(candidate, "@")
	if at <= 0 || at == len(candidate)-1 {
		return "", false
	}
	// Quoted local parts are not accepted, so "a@b"@ucla.edu never reaches
	// the suffix check.
	if candidate[0] == '"' || at > maxLocalLength {
		return "", false
	}

	domain, err := idna.Lookup.ToUnicode(candidate[at+1:])
	if err != nil || domain == "" {
		return "", false
	}

	local := norm.NFC.String(candidate[:at])
	return local + "@" + strings.ToLower(domain), true
}

// IsValidInstitutionalEmail reports whether candidate parses as an email
// address whose normalized form ends with InstitutionalSuffix.
func IsValidInstitutionalEmail(candidate string) bool {
	email, ok := NormalizeEmail(candidate)
	if !ok {
		return false
	}
	return strings.HasSuffix(email, InstitutionalSuffix)
}
