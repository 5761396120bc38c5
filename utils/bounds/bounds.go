// Package bounds checks arbitrary-precision integers against the ranges of
// fixed bit-width integer types.
//
// Every check goes through math/big, including the native widths, so that
// there is a single comparison path for U8 and U512 alike.
package bounds

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// Width is an integer width in bits.
type Width uint16

// Supported widths.
const (
	W8   Width = 8
	W32  Width = 32
	W64  Width = 64
	W128 Width = 128
	W256 Width = 256
	W512 Width = 512
)

// Widths lists the supported widths in ascending order.
var Widths = []Width{W8, W32, W64, W128, W256, W512}

type limit struct {
	min, max *big.Int
}

var (
	unsignedLimits = make(map[Width]limit, len(Widths))
	signedLimits   = make(map[Width]limit, len(Widths))
)

func init() {
	one := big.NewInt(1)
	for _, w := range Widths {
		unsignedLimits[w] = limit{
			min: new(big.Int),
			max: new(big.Int).Sub(math.BigPow(2, int64(w)), one),
		}
		half := math.BigPow(2, int64(w)-1)
		signedLimits[w] = limit{
			min: new(big.Int).Neg(half),
			max: new(big.Int).Sub(half, one),
		}
	}
}

func lookup(w Width, signed bool) limit {
	table := unsignedLimits
	if signed {
		table = signedLimits
	}
	l, ok := table[w]
	if !ok {
		panic(fmt.Sprintf("unsupported integer width %d", w))
	}
	return l
}

// Supported reports whether w is one of Widths.
func Supported(w Width) bool {
	_, ok := unsignedLimits[w]
	return ok
}

// InBounds reports whether v lies in [0, 2^w-1] (unsigned) or
// [-2^(w-1), 2^(w-1)-1] (signed). It panics on an unsupported width.
func InBounds(v *big.Int, w Width, signed bool) bool {
	l := lookup(w, signed)
	return v.Cmp(l.min) >= 0 && v.Cmp(l.max) <= 0
}

// Min returns the smallest value of the given width. The result is a copy.
func Min(w Width, signed bool) *big.Int {
	return new(big.Int).Set(lookup(w, signed).min)
}

// Max returns the largest value of the given width. The result is a copy.
func Max(w Width, signed bool) *big.Int {
	return new(big.Int).Set(lookup(w, signed).max)
}
