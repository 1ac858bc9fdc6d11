package tokens

import "github.com/golang-jwt/jwt/v5"

// AccessClaimsFromToken verifies an access token. Expired tokens fail with an
// error wrapping jwt.ErrTokenExpired.
func AccessClaimsFromToken(tokenStr string, accessSecret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc(accessSecret))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &claims, nil
}
