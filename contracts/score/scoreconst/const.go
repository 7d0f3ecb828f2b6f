// Package scoreconst contains constants and error messages of the score
// contract shared with off-chain code.
package scoreconst

const (
	// Precision is the fixed-point scale of scores, confidence and token
	// amounts: Precision units make one whole unit.
	Precision = 1_0000_0000

	// MinScore and MaxScore bound a single raw rating.
	MinScore = 1
	MaxScore = 10

	// DefaultSmoothing is the weight of a new rating in the running score
	// (0.1).
	DefaultSmoothing = 1000_0000

	// MaxConfidence is the confidence of a party no rating of which was ever
	// lost in a dispute (100.0).
	MaxConfidence = 100 * Precision

	// DefaultDecayRate is the confidence lost per vote of margin when a
	// dispute against a rater succeeds (0.2).
	DefaultDecayRate = 2000_0000

	// DefaultRestoreRate is the confidence restored per vote of margin when a
	// rater wins a dispute (0.1).
	DefaultRestoreRate = 1000_0000

	// RewardAmount is paid to consumers for every rating they submit
	// and by sellers to buyers on confirmed handoffs (10.0 tokens).
	RewardAmount = 10 * Precision
)

// Error messages thrown by the score contract.
const (
	ErrPartyNotRegistered      = "party is not registered"
	ErrSelfRating              = "rater can not rate itself"
	ErrScoreOutOfRange         = "score value must be between 1 and 10"
	ErrInvalidRoleOrDimension  = "invalid role or score type for this rating"
	ErrConfidenceNotApplicable = "confidence score only applies to factories and retailers"
	ErrCoordinatorOnly         = "only transaction coordinator can rate"
	ErrArbitratorOnly          = "only dispute arbitrator can adjust confidence"
	ErrRewardPoolExhausted     = "reward pool is exhausted"
	ErrScoreNotFound           = "score record not found"
	ErrInvalidDimension        = "invalid score dimension"
	ErrTokenOnly               = "only reward token is accepted"
)
