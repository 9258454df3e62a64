package hash

import (
	"github.com/alexedwards/argon2id"
	customErrors "github.com/avelorn/auth-service/internal/domain/auth/errors"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher hashes login passwords and refresh tokens with argon2id. The refresh
// token is treated as a secret credential and hashed before persistence
// exactly like a password.
type Hasher struct{}

func New() *Hasher {
	return &Hasher{}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := argon2id.CreateHash(plaintext, params)
	if err != nil {
		return "", customErrors.WrapInternal(err, "create hash")
	}
	return hashed, nil
}

// Verify reports whether plaintext matches the stored hash. The comparison is
// constant-time; a malformed hash counts as a non-match, never an error.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext, hashed)
	return err == nil && ok
}
