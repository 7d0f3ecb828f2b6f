/*
Package score implements Score contract, the reputation engine of the supply
chain.

Ratings come only through the handoff contract once a sale is confirmed. For
every rated party and dimension the contract keeps a running score, an
exponential moving average of submitted values scaled by
scoreconst.Precision. Who may rate whom along which dimension is decided by
package dimension.

Factories and retailers additionally have confidence: starting at
scoreconst.MaxConfidence it goes down when their ratings are successfully
disputed and partially recovers when they win. Only the dispute contract
adjusts it.

Consumers are paid scoreconst.RewardAmount (or the reward configured at
deploy) for every rating from the contract's own token balance, the reward
pool. The pool is funded by plain token transfers to the contract.

# Contract notifications

ScoreAssigned notification. It is emitted on every new rating.

	ScoreAssigned
	  - name: id
	    type: Integer
	  - name: rater
	    type: Hash160
	  - name: ratee
	    type: Hash160
	  - name: dimension
	    type: Integer
	  - name: value
	    type: Integer
	  - name: score
	    type: Integer

ConfidenceChanged notification. It is emitted when dispute outcome is applied.

	ConfidenceChanged
	  - name: party
	    type: Hash160
	  - name: confidence
	    type: Integer

ManualScoreSet notification. It is emitted when committee overrides a score.

	ManualScoreSet
	  - name: ratee
	    type: Hash160
	  - name: dimension
	    type: Integer
	  - name: score
	    type: Integer
*/
package score

/*
Contract storage model.

Current conventions:
 <id>: little-endian integer identifier
 <party>: 20-byte script hash
 <dim>: one byte, score dimension plus one
 <n>: little-endian 1-based position in a list

# Summary
Key-value storage format:
 - 'R', 'T', 'H', 'D' -> interop.Hash160
   registry, token, handoff and dispute contract addresses
 - 'W', 'K', 'O', 'P' -> int
   smoothing weight, confidence decay rate, restore rate and reward amount
 - 'n' -> int
   last allocated rating identifier
 - 's<id>' -> std.Serialize(ScoreRecord)
   rating record
 - 'l<party>' -> int
   number of ratings of the party
 - 'l<party><n>' -> int
   identifier of n-th rating of the party
 - 'r<party><dim>' -> int
   running score of the party along the dimension
 - 'c<party>' -> int
   confidence of the party
 - 'x<dim><handoff id>' -> int
   identifier of the rating made along the dimension within the handoff
*/
