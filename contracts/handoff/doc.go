/*
Package handoff implements Handoff contract, the transaction coordinator of
the supply chain.

A handoff is a sale between two registered parties where the buyer is exactly
one step after the seller (Supplier, Factory, Distributor, Retailer,
Consumer). The buyer records it, the seller confirms it; only confirmed
handoffs can be rated and every dimension of a handoff can be rated once.
Ratings are forwarded to the score contract, which accepts them from this
contract only.

Handoffs of a tangible asset are linked: each one refers to the handoff which
brought the asset to its seller. Following these links a consumer can rate
the factory that produced the asset.

Confirmed handoffs and ratings record the fact that two parties dealt with
each other. The dispute contract uses it to decide who may vote.

# Contract notifications

BuyRecorded notification. It is emitted when a buyer records a purchase.

	BuyRecorded
	  - name: id
	    type: Integer
	  - name: buyer
	    type: Hash160
	  - name: seller
	    type: Hash160
	  - name: assetID
	    type: Integer

SellConfirmed notification. It is emitted when a seller confirms the sale.

	SellConfirmed
	  - name: id
	    type: Integer
	  - name: seller
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: assetID
	    type: Integer

SellerRated notification. It is emitted when a buyer rates the handoff.

	SellerRated
	  - name: id
	    type: Integer
	  - name: buyer
	    type: Hash160
	  - name: ratee
	    type: Hash160
	  - name: dimension
	    type: Integer
	  - name: scoreID
	    type: Integer
*/
package handoff

/*
Contract storage model.

Current conventions:
 <id>: little-endian integer identifier
 <party>: 20-byte script hash
 <dim>: one byte, score dimension plus one
 <n>: little-endian 1-based position in a list
 <lid>: length of <id> in one byte followed by <id>

# Summary
Key-value storage format:
 - 'R', 'P', 'S', 'T' -> interop.Hash160
   registry, product, score and token contract addresses
 - 'n' -> int
   last allocated handoff identifier
 - 't<id>' -> std.Serialize(Handoff)
   handoff record
 - 'f<dim><id>' -> bool
   handoff was rated along the dimension
 - 'a<asset lid>' -> int
   number of handoffs of the asset
 - 'a<asset lid><n>' -> int
   n-th handoff of the asset
 - 'v<asset id>' -> int
   latest confirmed handoff which moved the asset
 - 'b<seller>' -> int
   number of counterparts which bought from or rated the seller
 - 'b<seller><n>' -> interop.Hash160
   n-th counterpart of the seller
 - 'e<party><party>' -> bool
   two parties dealt with each other, stored in both orders
*/
