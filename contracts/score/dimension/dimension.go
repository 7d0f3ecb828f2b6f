/*
Package dimension describes score dimensions and the rules deciding who may
rate whom along which of them.

Each of the twelve dimensions is owned by exactly one ratee role. Rating
permissions are kept as a table of (rater role, ratee role) pairs so adding a
role or a dimension changes data only.
*/
package dimension

import "github.com/provena-labs/provena-contract/contracts/registry/role"

// Score dimensions.
const (
	Trust = iota
	DeliverySpeed
	MaterialQuality
	ProductQuality
	Warranty
	EcoRating
	Packaging
	Transparency
	Accuracy
	Delivery
	PriceFairness
	ReturnPolicy

	// Count is the number of defined dimensions.
	Count
)

// PerRole is the number of dimensions owned by a single role.
const PerRole = 3

// Pair is a single rating permission.
type Pair struct {
	Rater int
	Ratee int
	// Traced pairs are allowed only for ratings routed through the provenance
	// chain of an asset.
	Traced bool
}

// owners[d] is the role owning dimension d.
var owners = []int{
	role.Supplier, role.Supplier, role.Supplier,
	role.Factory, role.Factory, role.Factory,
	role.Distributor, role.Distributor, role.Distributor,
	role.Retailer, role.Retailer, role.Retailer,
}

var pairs = []Pair{
	{Rater: role.Factory, Ratee: role.Supplier},
	{Rater: role.Distributor, Ratee: role.Factory},
	{Rater: role.Retailer, Ratee: role.Distributor},
	{Rater: role.Consumer, Ratee: role.Retailer},
	{Rater: role.Consumer, Ratee: role.Factory, Traced: true},
}

// Valid checks whether d is a defined dimension.
func Valid(d int) bool {
	return d >= 0 && d < Count
}

// Owner returns role owning dimension d or role.None for unknown values.
func Owner(d int) int {
	if !Valid(d) {
		return role.None
	}
	return owners[d]
}

// Of returns dimensions owned by ratee role r, empty for roles owning none.
func Of(r int) []int {
	res := []int{}
	for d := 0; d < Count; d++ {
		if owners[d] == r {
			res = append(res, d)
		}
	}
	return res
}

// Allowed checks whether a party of rater role may rate a party of ratee role
// along dimension d. Traced pairs match only when traced is set.
func Allowed(rater, ratee, d int, traced bool) bool {
	if Owner(d) != ratee || ratee == role.None {
		return false
	}
	for i := range pairs {
		p := pairs[i]
		if p.Rater == rater && p.Ratee == ratee && (!p.Traced || traced) {
			return true
		}
	}
	return false
}

var names = []string{
	"Trust", "DeliverySpeed", "MaterialQuality",
	"ProductQuality", "Warranty", "EcoRating",
	"Packaging", "Transparency", "Accuracy",
	"Delivery", "PriceFairness", "ReturnPolicy",
}

// String returns dimension name. It is not intended for use in contracts.
func String(d int) string {
	if !Valid(d) {
		return "Unknown"
	}
	return names[d]
}

// FromString is the inverse of String. It returns -1 for unknown names.
func FromString(s string) int {
	for d := 0; d < Count; d++ {
		if names[d] == s {
			return d
		}
	}
	return -1
}
