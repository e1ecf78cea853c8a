package domain

import "errors"

var (
	UnexpectedDatabaseError = errors.New("unexpected-database-error")
	ErrResultNotFound       = errors.New("result-not-found")
)

var (
	UnexpectedTokenGenerationError   = errors.New("unexpected-token-generation-error")
	UnexpectedTokenVerificationError = errors.New("unexpected-token-verification-error")
	ErrInvalidSigningAlg             = errors.New("invalid-signing-alg")
	ErrExpiredToken                  = errors.New("expired-token")
	ErrInvalidTokenSignature         = errors.New("invalid-token-signature")
	ErrCorruptedToken                = errors.New("corrupted-token")
)

var (
	UnexpectedPasscodeHashingError = errors.New("unexpected-passcode-hashing-error")
	ErrIncorrectPasscode           = errors.New("incorrect-passcode")
)

var (
	ErrMalformedRaster   = errors.New("malformed-raster")
	ErrUnsupportedRaster = errors.New("unsupported-raster")
)
