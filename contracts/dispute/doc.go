/*
Package dispute implements Dispute contract, the arbitrator of contested
ratings.

A rated party (challenger) may challenge a single rating by locking a
deposit. The rater (respondent) has to lock the same deposit before the
voting deadline or lose by forfeit. Parties which dealt with the challenger
before vote for one of the sides until the deadline, after that anyone can
finalize the dispute. Majority wins, ties go to the respondent. The winner
gets both deposits except for a half of the loser's one shared between
voters who backed the winner. Confidence of factory and retailer respondents
is then adjusted by the score contract.

Consumer ratings can not be challenged.

# Contract notifications

DisputeInitiated notification. It is emitted when a rating is challenged.

	DisputeInitiated
	  - name: id
	    type: Integer
	  - name: challenger
	    type: Hash160
	  - name: respondent
	    type: Hash160
	  - name: handoffID
	    type: Integer
	  - name: dimension
	    type: Integer
	  - name: deadline
	    type: Integer

DisputeResponded notification. It is emitted when the respondent locks its deposit.

	DisputeResponded
	  - name: id
	    type: Integer
	  - name: respondent
	    type: Hash160

VoteCast notification. It is emitted on every vote.

	VoteCast
	  - name: id
	    type: Integer
	  - name: voter
	    type: Hash160
	  - name: supportRespondent
	    type: Boolean

DisputeFinalized notification. It is emitted when the dispute is closed.

	DisputeFinalized
	  - name: id
	    type: Integer
	  - name: outcome
	    type: Integer
	  - name: votesForRespondent
	    type: Integer
	  - name: votesForChallenger
	    type: Integer
*/
package dispute

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
 - 'R', 'T', 'S', 'H' -> interop.Hash160
   registry, token, score and handoff contract addresses
 - 'M' -> int
   required deposit
 - 'W' -> int
   voting period in milliseconds
 - 'n' -> int
   last allocated dispute identifier
 - 'd<id>' -> std.Serialize(Dispute)
   dispute record
 - 'b<lid>' -> int
   number of votes cast in the dispute
 - 'b<lid><n>' -> std.Serialize(Ballot)
   n-th vote of the dispute
 - 'v<party><id>' -> bool
   party voted in the dispute
 - 'a<dim><handoff id>' -> int
   unresolved dispute of the rating
 - 'c<party>', 'r<party>' -> int
   number of disputes initiated by the party and against the party
 - 'c<party><n>', 'r<party><n>' -> int
   n-th dispute initiated by the party and against the party
*/
