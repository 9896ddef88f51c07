package kernel

import (
	"strings"

	"pizzadelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// IDPrefix tags an ID with the kind of entity it identifies.
type IDPrefix string

const (
	DriverIDPrefix   IDPrefix = "DRV"
	CustomerIDPrefix IDPrefix = "CUST"
	OrderIDPrefix    IDPrefix = "ORD"
	SessionIDPrefix  IDPrefix = "SES"

	// idRandomLength is the number of hex characters taken from a random UUID.
	idRandomLength = 8
)

// ErrIDIsNotConstructed indicates that an ID was not created through NewID or IDFromString.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromString")

// ErrIDIsInvalid is returned by IDFromString for values that cannot travel on the wire.
var ErrIDIsInvalid = errs.NewValueIsInvalidError("id")

// ID is a value object identifying drivers, customers, orders and sessions.
// It is a prefix followed by eight upper-case hex characters taken from a
// random version 4 UUID, for example "ORD9F3A61C2". IDs are short enough to
// type into a client and never contain the protocol delimiter.
//
// ID is comparable and can be used as a map key.
//
// Example:
//
//	orderID := kernel.NewID(kernel.OrderIDPrefix)
//	fmt.Println(orderID) // e.g. "ORD9F3A61C2"
type ID struct {
	value string
}

// NewID generates a new random ID with the given prefix.
func NewID(prefix IDPrefix) ID {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ID{value: string(prefix) + strings.ToUpper(raw[:idRandomLength])}
}

// IDFromString restores an ID received from a client or from storage.
// Surrounding whitespace is removed; empty values and values containing the
// protocol delimiter are rejected.
//
// Example:
//
//	id, err := kernel.IDFromString(fields[1])
//	if err != nil {
//	    return err
//	}
func IDFromString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, ErrIDIsNotConstructed
	}
	if strings.ContainsAny(s, ":\r\n") {
		return ID{}, ErrIDIsInvalid
	}
	return ID{value: s}, nil
}

// String returns the textual form of the ID.
func (id ID) String() string {
	return id.value
}

// HasPrefix reports whether the ID was generated for the given entity kind.
func (id ID) HasPrefix(prefix IDPrefix) bool {
	return strings.HasPrefix(id.value, string(prefix))
}

// IsEqual compares two IDs for equality.
func (id ID) IsEqual(other ID) bool {
	return id.value == other.value
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (id ID) Validate() error {
	if id.value == "" {
		return ErrIDIsNotConstructed
	}
	return nil
}
