/*
Package registry implements Registry contract, the directory of supply chain
stakeholders.

Every party (script hash) may hold at most one role: Supplier, Factory,
Distributor, Retailer or Consumer, see package role. Other contracts consult
the directory to authorize operations and never modify it.

# Contract notifications

Registered notification. It is emitted when a party takes a role.

	Registered
	  - name: party
	    type: Hash160
	  - name: role
	    type: Integer
	  - name: metadata
	    type: String

MetadataUpdated notification. It is emitted when a party replaces its metadata.

	MetadataUpdated
	  - name: party
	    type: Hash160
	  - name: metadata
	    type: String

RoleTransferred notification. It is emitted when a role moves to another party.

	RoleTransferred
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: role
	    type: Integer

Removed notification. It is emitted when the committee unregisters a party.

	Removed
	  - name: party
	    type: Hash160
	  - name: role
	    type: Integer
*/
package registry

/*
Contract storage model.

# Summary
Key-value storage format:
 - 's<party>' -> std.Serialize(Stakeholder)
   role and metadata of the registered party
 - 'c<role>' -> int
   number of parties registered with the role
*/
