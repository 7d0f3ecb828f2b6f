/*
Package product implements Product contract, the ledger of tracked assets.

Products are minted by their creators and change hands through Transfer,
usually invoked by the handoff contract once a sale is confirmed. Every
product keeps the append-only list of its owners.

# Contract notifications

ProductMinted notification. It is emitted on a new product.

	ProductMinted
	  - name: id
	    type: Integer
	  - name: creator
	    type: Hash160
	  - name: metadata
	    type: String

ProductTransferred notification. It is emitted when product changes its owner.

	ProductTransferred
	  - name: id
	    type: Integer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160

ProductUpdated notification. It is emitted when product metadata changes.

	ProductUpdated
	  - name: id
	    type: Integer
	  - name: metadata
	    type: String
*/
package product

/*
Contract storage model.

Current conventions:
 <id>: little-endian product identifier, starting from 1
 <lid>: length of <id> in one byte followed by <id>
 <n>: little-endian 1-based position in a list

# Summary
Key-value storage format:
 - 'o<contract>' -> bool
   operator allowed to transfer products on behalf of their owners
 - 'n' -> int
   last allocated product identifier
 - 'p<id>' -> std.Serialize(Product)
   product record
 - 'h<lid>' -> int
   number of owners the product had
 - 'h<lid><n>' -> interop.Hash160
   n-th owner of the product, the creator first
*/
