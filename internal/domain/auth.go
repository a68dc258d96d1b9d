package domain

import "time"

// TokenType is the scheme clients must use when presenting the token.
const TokenType = "Bearer"

// IssuedToken packages a freshly minted credential with the identity it was
// minted for. Nothing here is persisted; validity is recomputed from the
// token string alone.
type IssuedToken struct {
	Token     string
	Type      string
	SubjectID int64
	Name      string
	CPF       string
	Role      Role
	ExpiresAt time.Time
}
