// Package keys provides the public key abstraction used to derive account
// hashes. Only the byte layout matters here: a key is an algorithm tag plus
// raw key bytes, and its account hash is the blake2b-256 digest of the
// algorithm name, a zero separator and the raw bytes. Key generation, PEM
// files and signatures live elsewhere.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"
)

// Algo identifies the signature scheme of a public key. Its value is the
// tag byte that prefixes the key in its hex form.
type Algo uint8

const (
	Ed25519   Algo = 0x01
	Secp256k1 Algo = 0x02
)

var algoInfo = map[Algo]struct {
	name   string
	rawLen int
}{
	// Ed25519 keys are the 32-byte curve point.
	Ed25519: {"ED25519", 32},
	// Secp256k1 keys are stored compressed.
	Secp256k1: {"SECP256K1", 33},
}

// Name returns the algorithm name that is mixed into the account hash.
func (a Algo) Name() string {
	if info, ok := algoInfo[a]; ok {
		return info.name
	}
	return fmt.Sprintf("Algo(%#02x)", uint8(a))
}

func (a Algo) String() string {
	return a.Name()
}

// ParseAlgo accepts the algorithm names "ed25519" and "secp256k1" in any case.
func ParseAlgo(s string) (Algo, error) {
	for a, info := range algoInfo {
		if strings.EqualFold(info.name, s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown key algorithm %q", s)
}

var (
	ErrEmptyPubKey    = errors.New("empty pubkey")
	ErrUnknownAlgo    = errors.New("unknown key algorithm")
	ErrInvalidKeySize = errors.New("invalid public key size")
)

// PubKey is a public key tagged with its algorithm.
type PubKey struct {
	// Algo is the signature scheme.
	Algo Algo
	// Raw holds the key bytes without the tag.
	Raw []byte
}

// New checks that raw has the size expected for algo.
func New(algo Algo, raw []byte) (PubKey, error) {
	pk := PubKey{Algo: algo, Raw: common.CopyBytes(raw)}
	if err := pk.Check(); err != nil {
		return PubKey{}, err
	}
	return pk, nil
}

// Check reports an uninitialized key, an unknown algorithm or a raw key of
// the wrong size.
func (pk PubKey) Check() error {
	if pk.Empty() {
		return ErrEmptyPubKey
	}
	info, ok := algoInfo[pk.Algo]
	if !ok {
		return ErrUnknownAlgo
	}
	if len(pk.Raw) != info.rawLen {
		return fmt.Errorf("%w: %s key must be %d bytes, got %d", ErrInvalidKeySize, info.name, info.rawLen, len(pk.Raw))
	}
	return nil
}

// Empty checks if the public key is uninitialized.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Algo == 0
}

// AccountHash derives the account address of the key:
// blake2b-256(name || 0x00 || raw).
func (pk PubKey) AccountHash() common.Hash {
	name := pk.Algo.Name()
	buf := make([]byte, 0, len(name)+1+len(pk.Raw))
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = append(buf, pk.Raw...)
	return common.Hash(blake2b.Sum256(buf))
}

// Bytes returns the tag byte followed by the raw key.
func (pk PubKey) Bytes() []byte {
	return append([]byte{byte(pk.Algo)}, pk.Raw...)
}

// String returns the hex form of Bytes without a 0x prefix.
func (pk PubKey) String() string {
	return common.Bytes2Hex(pk.Bytes())
}

// FromString parses a hex string (with or without "0x" prefix).
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes splits b into the tag byte and the raw key, then checks the
// key size.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, ErrEmptyPubKey
	}
	pk := PubKey{Algo: Algo(b[0]), Raw: common.CopyBytes(b[1:])}
	if err := pk.Check(); err != nil {
		return PubKey{}, err
	}
	return pk, nil
}

// MarshalText implements encoding.TextMarshaler.
func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
