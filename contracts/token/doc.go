/*
Package token implements NEP-17 reward token contract.

Rewards for confirmed handoffs and consumer ratings as well as dispute
deposits are paid in this token. Whole supply is minted to the owner given in
deploy data; afterwards tokens only move between accounts, so total supply is
constant.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package token

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'supply' -> int
   total amount of minted tokens
 - 'a<holder>' -> int
   balance of the holder, absent for empty accounts
 - 'o<contract>' -> bool
   operator allowed to transfer tokens of any account
*/
