// Package uref implements unforgeable references: a 32-byte storage address
// paired with the access rights granted to the holder, and their formatted
// string form "uref-<64 hex chars>-<octal rights>".
package uref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Prefix starts every formatted URef.
const Prefix = "uref-"

// AddressLength is the byte length of a URef address.
const AddressLength = common.HashLength

// AccessRights is a bit set of Read, Write and Add. Bit patterns above
// ReadAddWrite are carried as they are.
type AccessRights uint8

const (
	None         AccessRights = 0
	Read         AccessRights = 1 << 0
	Write        AccessRights = 1 << 1
	Add          AccessRights = 1 << 2
	ReadWrite                 = Read | Write
	ReadAdd                   = Read | Add
	AddWrite                  = Add | Write
	ReadAddWrite              = Read | Add | Write
)

var rightsNames = map[AccessRights]string{
	None:         "NONE",
	Read:         "READ",
	Write:        "WRITE",
	Add:          "ADD",
	ReadWrite:    "READ_WRITE",
	ReadAdd:      "READ_ADD",
	AddWrite:     "ADD_WRITE",
	ReadAddWrite: "READ_ADD_WRITE",
}

// Has reports whether every bit of o is set in r.
func (r AccessRights) Has(o AccessRights) bool {
	return r&o == o
}

func (r AccessRights) String() string {
	if name, ok := rightsNames[r]; ok {
		return name
	}
	return fmt.Sprintf("AccessRights(%#o)", uint8(r))
}

// ParseAccessRights accepts a canonical name such as "READ_ADD"
// (case-insensitive) or an octal number such as "5" or "07".
func ParseAccessRights(s string) (AccessRights, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for r, name := range rightsNames {
		if name == upper {
			return r, nil
		}
	}
	v, err := strconv.ParseUint(upper, 8, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown access rights %q", s)
	}
	return AccessRights(v), nil
}

// URef is an address plus the rights granted on it.
type URef struct {
	Address common.Hash
	Rights  AccessRights
}

// New builds a URef from a raw address. It fails unless addr is exactly
// AddressLength bytes.
func New(addr []byte, rights AccessRights) (URef, error) {
	if len(addr) != AddressLength {
		return URef{}, fmt.Errorf("the length of a URef address should be %d, got %d", AddressLength, len(addr))
	}
	return URef{Address: common.BytesToHash(addr), Rights: rights}, nil
}

// Bytes is the canonical encoding: 32 address bytes and one rights byte.
func (u URef) Bytes() []byte {
	out := make([]byte, 0, AddressLength+1)
	out = append(out, u.Address.Bytes()...)
	return append(out, byte(u.Rights))
}

func (u URef) String() string {
	return Format(u)
}

// MarshalText renders the formatted string.
func (u URef) MarshalText() ([]byte, error) {
	return []byte(Format(u)), nil
}

// UnmarshalText parses the formatted string.
func (u *URef) UnmarshalText(input []byte) error {
	res, err := Parse(string(input))
	if err != nil {
		return err
	}
	*u = res
	return nil
}

// FormatError reports a malformed formatted URef.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid uref %q: %s", e.Input, e.Reason)
}

// Parse reads "uref-<address>-<rights>". The address must be hex of exactly
// 32 bytes and the rights a base-8 number that fits in one byte.
func Parse(s string) (URef, error) {
	fail := func(reason string) (URef, error) {
		return URef{}, &FormatError{Input: s, Reason: reason}
	}
	if !strings.HasPrefix(s, Prefix) {
		return fail("prefix is not '" + Prefix + "'")
	}
	parts := strings.Split(s[len(Prefix):], "-")
	if len(parts) != 2 {
		return fail("no access rights as suffix")
	}
	addr, err := hexutil.Decode("0x" + parts[0])
	if err != nil {
		return fail("address is not valid hex: " + err.Error())
	}
	if len(addr) != AddressLength {
		return fail(fmt.Sprintf("address should be %d bytes, got %d", AddressLength, len(addr)))
	}
	rights, err := strconv.ParseUint(parts[1], 8, 8)
	if err != nil {
		return fail("access rights are not a valid octal byte")
	}
	return URef{Address: common.BytesToHash(addr), Rights: AccessRights(rights)}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) URef {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Format is the left inverse of Parse. Rights are printed as three octal
// digits.
func Format(u URef) string {
	return fmt.Sprintf("%s%s-%03o", Prefix, common.Bytes2Hex(u.Address.Bytes()), uint8(u.Rights))
}
