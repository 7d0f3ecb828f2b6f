// Package disputeconst contains constants and error messages of the dispute
// contract shared with off-chain code.
package disputeconst

// Dispute outcomes.
const (
	Pending = iota
	RespondentWins
	ChallengerWins
)

const (
	// DefaultDeposit is the stake both parties lock in a dispute (1.0 token).
	DefaultDeposit = 1_0000_0000

	// DefaultVotingPeriod is the voting window in milliseconds (24h).
	DefaultVotingPeriod = 24 * 60 * 60 * 1000
)

// Error messages thrown by the dispute contract.
const (
	ErrWrongDeposit         = "deposit must be equal to the required amount"
	ErrDuplicateDispute     = "dispute already exists for this rating"
	ErrRespondentIsConsumer = "consumer ratings can not be disputed"
	ErrScoreNotFound        = "score record not found"
	ErrNotRatee             = "challenger is not the ratee"
	ErrNotRater             = "respondent is not the rater"
	ErrDisputeNotFound      = "dispute not found"
	ErrNotRespondent        = "only respondent can respond"
	ErrAlreadyResponded     = "respondent has already deposited"
	ErrDepositsIncomplete   = "deposits are not complete"
	ErrPartyVote            = "dispute parties can not vote"
	ErrNoStanding           = "voter has no transactions with the challenger"
	ErrAlreadyVoted         = "voter has already voted"
	ErrVotingClosed         = "voting period is over"
	ErrVotingStillOpen      = "voting period not over"
	ErrAlreadyFinalized     = "dispute is already finalized"
	ErrDepositFailed        = "deposit transfer failed"
	ErrPayoutFailed         = "payout transfer failed"
	ErrTokenOnly            = "only reward token is accepted"
)
