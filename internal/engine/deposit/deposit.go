// Package deposit enumerates the ore deposits of the mine. Several
// parameter tables are keyed by deposit; the West deposit additionally
// feeds the secondary oxide and weathered mill circuits.
package deposit

import "fmt"

// Deposit identifies one of the four ore bodies.
type Deposit int

const (
	Main Deposit = iota
	North
	East
	West
)

// FromCode maps the 1-based model attribute value to a Deposit.
func FromCode(code int) (Deposit, error) {
	if code < 1 || code > 4 {
		return 0, fmt.Errorf("deposit code %d out of range", code)
	}
	return Deposit(code - 1), nil
}

// Index returns the 0-based table index for the deposit.
func (d Deposit) Index() int { return int(d) }

// SecondaryCircuits reports whether the deposit can feed the oxide and
// weathered mill circuits in addition to the sulfide circuit.
func (d Deposit) SecondaryCircuits() bool { return d == West }

func (d Deposit) String() string {
	switch d {
	case Main:
		return "Main"
	case North:
		return "North"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Deposit(%d)", int(d))
}
