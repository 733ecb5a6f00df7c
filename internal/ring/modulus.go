package ring

import (
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/agbru/padic/internal/errors"
)

// Modulus is an explicit p-adic precision: the prime p, the exponent e and
// the modulus Q = p^e. It is passed to every operation that needs more than
// the bare modulus, instead of being kept as ambient state.
type Modulus struct {
	P *big.Int
	E int
	Q *big.Int
}

// NewModulus returns the modulus p^e.
//
// Parameters:
//   - p: The prime. Primality is a trusted precondition.
//   - e: The exponent.
//
// Returns:
//   - Modulus: The modulus.
//   - error: A PrecisionError if e < 1, a ValidationError if p < 2.
func NewModulus(p *big.Int, e int) (Modulus, error) {
	if e < 1 {
		return Modulus{}, apperrors.NewPrecisionError(e)
	}
	if p == nil || p.Cmp(big.NewInt(2)) < 0 {
		return Modulus{}, apperrors.NewValidationError("p", "prime must be at least 2", p)
	}
	pp := new(big.Int).Set(p)
	return Modulus{P: pp, E: e, Q: Power(pp, e)}, nil
}

// AtPrecision returns the modulus with the same prime at exponent e.
// e must be at least 1.
func (m Modulus) AtPrecision(e int) Modulus {
	return Modulus{P: m.P, E: e, Q: Power(m.P, e)}
}

// PowerCacheSize bounds the number of prime powers kept by Power.
const PowerCacheSize = 1024

type powerKey struct {
	p string
	e int
}

// powers memoizes p^e: every lifting step asks for the same few moduli.
var powers, _ = lru.New[powerKey, *big.Int](PowerCacheSize)

// Power returns p^e as a fresh integer.
func Power(p *big.Int, e int) *big.Int {
	key := powerKey{p: string(p.Bytes()), e: e}
	if p.Sign() < 0 {
		key.p = "-" + key.p
	}
	if v, ok := powers.Get(key); ok {
		return new(big.Int).Set(v)
	}
	v := new(big.Int).Exp(p, big.NewInt(int64(e)), nil)
	powers.Add(key, v)
	return new(big.Int).Set(v)
}
