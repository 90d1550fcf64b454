package envfile

import (
	"crypto/rand"
	"math/big"

	"github.com/arthur-debert/archup/pkg/errors"
)

// SecretKeyLength is the length of generated SECRET_KEY values
const SecretKeyLength = 64

// secretAlphabet is letters, digits and punctuation without the characters
// that need escaping inside a double-quoted env value: ! " ' \ $ `
const secretAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
	"#%&()*+,-./:;<=>?@[]^_{|}~"

// NewSecretKey returns n characters drawn uniformly from secretAlphabet.
func NewSecretKey(n int) (string, error) {
	if n <= 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "secret length must be positive, got %d", n)
	}
	max := big.NewInt(int64(len(secretAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to read random bytes")
		}
		out[i] = secretAlphabet[idx.Int64()]
	}
	return string(out), nil
}
