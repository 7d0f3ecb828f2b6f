/*
Package role enumerates stakeholder roles of the supply chain.

Values are stored on chain as plain integers and follow the order goods move
in: every buyer sits exactly one step after its seller.
*/
package role

// Stakeholder roles.
const (
	None = iota
	Supplier
	Factory
	Distributor
	Retailer
	Consumer
)

// Valid checks whether r is an assignable role.
func Valid(r int) bool {
	return r >= Supplier && r <= Consumer
}

// Adjacent checks whether a party with buyer role may buy from a party with
// seller role directly.
func Adjacent(buyer, seller int) bool {
	return Valid(buyer) && Valid(seller) && buyer-seller == 1
}

// Challengeable checks whether ratings made by a party of role r can be
// disputed.
func Challengeable(r int) bool {
	return Valid(r) && r != Consumer
}

// TracksConfidence checks whether confidence is kept for a party of role r.
func TracksConfidence(r int) bool {
	return r == Factory || r == Retailer
}

// String returns human-readable role name. It is not intended for use in
// contracts.
func String(r int) string {
	switch r {
	case Supplier:
		return "Supplier"
	case Factory:
		return "Factory"
	case Distributor:
		return "Distributor"
	case Retailer:
		return "Retailer"
	case Consumer:
		return "Consumer"
	default:
		return "None"
	}
}

// FromString is the inverse of String. It returns None for unknown names.
func FromString(s string) int {
	for r := Supplier; r <= Consumer; r++ {
		if String(r) == s {
			return r
		}
	}
	return None
}
