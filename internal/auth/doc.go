// Package auth implements registration, login and bearer-token verification.
//
// Passwords are stored as bcrypt digests. Login issues an HS256 JWT carrying
// the user's email; the server keeps no session state and there is no
// revocation, so a token stays valid until it expires.
//
// # Configuration
//
//	JWT_SECRET=<secret>   # Required, signs every token
//	EXPIRES_IN=1h         # Token lifetime: "1h", "2 days", "1w"; a bare number is milliseconds
//	BCRYPT_COST=10        # bcrypt cost factor
//
// # Usage
//
// Wire the service in the entrypoint:
//
//	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
//	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
//	authService := auth.NewService(userStore, hasher, issuer)
//	router.Use(auth.NewMiddleware(authService).Handler())
//
// Read the caller in handlers:
//
//	email := auth.GetEmail(c)  // "" when no valid token was sent
package auth
