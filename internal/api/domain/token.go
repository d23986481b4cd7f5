package domain

// TokenPair is what every successful authentication event returns: a
// short-lived access token and a long-lived refresh token, both signed JWTs
// over the same claim shape but with independent secrets. Tokens are never
// persisted server-side; they are invalidated only by expiry.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn is the remaining lifetime of the access token in seconds,
	// computed from the token's embedded expiry rather than a constant.
	ExpiresIn int64 `json:"expiresIn"`
}
