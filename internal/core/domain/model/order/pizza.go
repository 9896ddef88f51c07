package order

import (
	"fmt"
	"strings"

	"pizzadelivery/internal/pkg/errs"
)

// PizzaType is an item from the fixed menu. The value is the canonical name
// echoed back to clients in ASSIGN messages.
type PizzaType string

const (
	Margherita PizzaType = "Margherita"
	Pepperoni  PizzaType = "Pepperoni"
	Hawaiian   PizzaType = "Hawaiian"
	Veggie     PizzaType = "Veggie"
	MeatLovers PizzaType = "MeatLovers"
	BBQChicken PizzaType = "BBQChicken"
	Supreme    PizzaType = "Supreme"
	FourCheese PizzaType = "FourCheese"
)

var menu = []PizzaType{
	Margherita, Pepperoni, Hawaiian, Veggie, MeatLovers, BBQChicken, Supreme, FourCheese,
}

// Menu returns every pizza that can be ordered.
func Menu() []PizzaType {
	out := make([]PizzaType, len(menu))
	copy(out, menu)
	return out
}

// ParsePizzaType matches s against the menu ignoring case, spaces and
// underscores, so "meat lovers" and "Four_Cheese" are accepted.
func ParsePizzaType(s string) (PizzaType, error) {
	key := normalizePizza(s)
	if key == "" {
		return "", errs.NewValueIsRequiredError("pizza type")
	}
	for _, p := range menu {
		if normalizePizza(string(p)) == key {
			return p, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("pizza type", fmt.Errorf("%q is not on the menu", s))
}

func (p PizzaType) String() string {
	return string(p)
}

func (p PizzaType) Validate() error {
	_, err := ParsePizzaType(string(p))
	return err
}

func normalizePizza(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}
