package crypto

import (
	"fmt"

	"doodleparty/domain"

	"github.com/alexedwards/argon2id"
)

// Argon2idHasher hashes private room passcodes.
type Argon2idHasher struct {
	params *argon2id.Params
}

// NewArgon2idHasher creates a new hasher with the specified difficulty parameters.
//
// memory must be provided in Kilobytes (KB).
func NewArgon2idHasher(time, memory, keyLength, saltLength uint32, parallelism uint8) *Argon2idHasher {
	return &Argon2idHasher{
		params: &argon2id.Params{
			Memory:      memory,
			Iterations:  time,
			Parallelism: parallelism,
			SaltLength:  saltLength,
			KeyLength:   keyLength,
		},
	}
}

func (h *Argon2idHasher) Hash(passcode string) (string, error) {
	hash, err := argon2id.CreateHash(passcode, h.params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.UnexpectedPasscodeHashingError, err)
	}
	return hash, nil
}

func (h *Argon2idHasher) Compare(hash, passcode string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(passcode, hash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.UnexpectedPasscodeHashingError, err)
	}
	return match, nil
}
