package ports

import "time"

// TokenClaims is the identity payload embedded in both token classes.
// Name is carried through when present and omitted from the token otherwise.
type TokenClaims struct {
	UserID uint
	Email  string
	Name   string
}

// TokenService issues and verifies the two classes of signed, expiring
// bearer tokens. Access and refresh tokens are signed with distinct secrets;
// validity is determined purely by signature and expiry.
type TokenService interface {
	IssueAccessToken(claims TokenClaims, ttl time.Duration) (string, error)
	IssueRefreshToken(claims TokenClaims, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (*TokenClaims, error)
	VerifyRefreshToken(token string) (*TokenClaims, error)
}
