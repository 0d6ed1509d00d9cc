// Package algebra provides the arithmetic backbone for a cryptography
// course: modular integers, finite fields, polynomial rings, elliptic
// curves and the classic public-key schemes built on them, all at
// teaching scale with inspectable intermediate values.
//
// The packages build on each other roughly bottom-up:
//   - arith: number-theoretic utilities on big integers
//   - zmod: the ring Z/nZ
//   - field: prime fields GF(p)
//   - poly: polynomial rings over a field
//   - extension: extension fields GF(p^k)
//   - gf256: the AES byte field GF(2^8)
//   - group: a generic cyclic-group engine with discrete log attacks
//   - ecc: short Weierstrass curves with ECDH and ECDSA
//   - pairing: Weil and Tate pairings on toy curves
//   - r1cs: rank-1 constraint systems over a field
//   - cryptolib: textbook RSA, Diffie-Hellman, commitments, Paillier,
//     secret sharing, BLS signatures and learning with errors
//
// Everything here is deliberately breakable: parameters are small,
// algorithms favor clarity over constant-time safety, and nothing is
// fit for production use.
package algebra

import "github.com/blang/semver/v4"

var Version = semver.MustParse("0.1.0")
