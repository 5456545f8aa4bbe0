// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens and IP hashing.

# Passwords

Passwords are stored as bcrypt hashes and never logged or returned:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, attempt) // ErrInvalidCredentials on mismatch

# Session Tokens

Sessions are HS256 JWTs carrying the user ID as the subject and an admin flag:

	token, err := auth.IssueToken(userID, isAdmin, secret, 24*time.Hour, time.Now())
	claims, err := auth.ParseToken(token, secret) // ErrInvalidToken when bad or expired

Tokens signed with any non-HMAC method are rejected. Logout is client-side;
the server keeps no session state.

# IP Hashing

Ballots record a privacy-preserving origin instead of the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
