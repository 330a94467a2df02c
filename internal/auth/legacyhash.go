package auth

import "encoding/base64"

// legacySalt is the fixed suffix the original password encoding used.
const legacySalt = "omf_salt_2024"

// LegacyHash reproduces the historical reversible password encoding:
// base64(password + fixed salt). It is NOT a hash and provides no
// confidentiality; it exists only so rows created by the old client can
// still log in once and be upgraded to bcrypt (see service.AdminService).
func LegacyHash(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password + legacySalt))
}
