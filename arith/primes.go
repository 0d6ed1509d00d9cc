package arith

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// sieveBound is the exclusive upper limit of the precomputed sieve; primality
// below it is decided by lookup, not by Miller-Rabin.
const sieveBound = 1 << 20

// enumBound caps PrimesUpTo so a typo cannot allocate gigabytes.
const enumBound = 1 << 26

var (
	sieveOnce sync.Once
	composite *bitset.BitSet
)

// smallSieve marks composites up to the given bound, 0 and 1 included.
func smallSieve(bound uint) *bitset.BitSet {
	b := bitset.New(bound)
	b.Set(0)
	b.Set(1)
	for i := uint(2); i*i < bound; i++ {
		if b.Test(i) {
			continue
		}
		for j := i * i; j < bound; j += i {
			b.Set(j)
		}
	}
	return b
}

func sieve() *bitset.BitSet {
	sieveOnce.Do(func() {
		composite = smallSieve(sieveBound)
	})
	return composite
}

// millerRabinBases is a deterministic witness set for all n < 3.3 * 10^24,
// which covers every 64-bit integer.
var millerRabinBases = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// largeBases extends the witness set for inputs above 64 bits; with fixed
// bases the test stays reproducible, at the usual probabilistic guarantee.
var largeBases = func() []int64 {
	var bases []int64
	s := sieve()
	for i := uint(2); len(bases) < 40; i++ {
		if !s.Test(i) {
			bases = append(bases, int64(i))
		}
	}
	return bases
}()

// IsPrime reports whether n is prime. Below 2^20 the answer comes from a
// sieve lookup. Above, a Miller-Rabin test runs with a fixed base set that is
// deterministic for every input up to 64 bits and probabilistic (error
// probability below 4^-40) beyond.
func IsPrime(n *big.Int) bool {
	if n == nil || n.Sign() <= 0 {
		return false
	}
	if n.IsUint64() && n.Uint64() < sieveBound {
		return !sieve().Test(uint(n.Uint64()))
	}
	if n.Bit(0) == 0 {
		return false
	}

	bases := millerRabinBases
	if n.BitLen() > 64 {
		bases = largeBases
	}

	// n-1 = d * 2^s with d odd
	nMinus1 := new(big.Int).Sub(n, bigOne)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}

	x := new(big.Int)
	for _, a := range bases {
		base := big.NewInt(a)
		base.Mod(base, n)
		if base.Sign() == 0 {
			continue
		}
		x.Exp(base, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		witness := true
		for i := 0; i < s-1; i++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// IsSafePrime reports whether p and (p-1)/2 are both prime.
func IsSafePrime(p *big.Int) bool {
	if !IsPrime(p) {
		return false
	}
	q := new(big.Int).Sub(p, bigOne)
	q.Rsh(q, 1)
	return IsPrime(q)
}

// PrimesUpTo returns all primes <= n in ascending order.
func PrimesUpTo(n uint64) ([]uint64, error) {
	if n >= enumBound {
		return nil, fmt.Errorf("%w: prime enumeration up to %d (limit %d)", ErrBoundExceeded, n, enumBound)
	}
	var s *bitset.BitSet
	if n < sieveBound {
		s = sieve()
	} else {
		s = smallSieve(uint(n) + 1)
	}
	var primes []uint64
	for i := uint64(2); i <= n; i++ {
		if !s.Test(uint(i)) {
			primes = append(primes, i)
		}
	}
	return primes, nil
}

// RandomPrime returns a random prime with exactly the given bit length. The
// top bit is forced so the result has full length and candidates are odd.
// It fails with ErrRetriesExceeded if no prime is found within the retry
// budget (64 per bit by default, override with WithMaxRetries).
func RandomPrime(bits int, opts ...Option) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("prime bit length must be at least 2, got %d", bits)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	maxRetries := cfg.maxRetries
	if maxRetries == 0 {
		maxRetries = 64 * bits
	}

	reader := cfg.rand
	if reader == nil {
		reader = rand.Reader
	}

	bytes := make([]byte, (bits+7)/8)
	p := new(big.Int)
	for try := 0; try < maxRetries; try++ {
		if _, err := io.ReadFull(reader, bytes); err != nil {
			return nil, err
		}
		p.SetBytes(bytes)
		// trim to the requested length, then force the ends
		excess := p.BitLen() - bits
		if excess > 0 {
			p.Rsh(p, uint(excess))
		}
		p.SetBit(p, bits-1, 1)
		p.SetBit(p, 0, 1)
		if IsPrime(p) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no %d-bit prime found in %d draws", ErrRetriesExceeded, bits, maxRetries)
}
