package chain

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/olekukonko/tablewriter"
	"github.com/provena-labs/provena-contract/contracts"
	"github.com/provena-labs/provena-contract/rpc/dispute"
	"github.com/provena-labs/provena-contract/rpc/fault"
	"github.com/provena-labs/provena-contract/rpc/handoff"
	"github.com/provena-labs/provena-contract/rpc/product"
	"github.com/provena-labs/provena-contract/rpc/registry"
	"github.com/provena-labs/provena-contract/rpc/score"
	"github.com/provena-labs/provena-contract/rpc/token"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// versionReader is implemented by readers of all Provena contracts.
type versionReader interface {
	Version() (*big.Int, error)
}

func listContracts(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	readers := map[string]func(util.Uint160) versionReader{
		contracts.RegistryDir: func(h util.Uint160) versionReader { return registry.NewReader(inv, h) },
		contracts.ProductDir:  func(h util.Uint160) versionReader { return product.NewReader(inv, h) },
		contracts.TokenDir:    func(h util.Uint160) versionReader { return token.NewReader(inv, h) },
		contracts.ScoreDir:    func(h util.Uint160) versionReader { return score.NewReader(inv, h) },
		contracts.HandoffDir:  func(h util.Uint160) versionReader { return handoff.NewReader(inv, h) },
		contracts.DisputeDir:  func(h util.Uint160) versionReader { return dispute.NewReader(inv, h) },
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Contract", "Version", "Script hash"})

	for _, name := range contracts.Dirs() {
		h, err := contractHash(v, name)
		if err != nil {
			out.Append([]string{name, "unknown", "not configured"})
			continue
		}

		ver, err := readers[name](h).Version()
		if err != nil {
			ver = nil
		}

		out.Append([]string{name, versionString(ver), h.StringLE()})
	}

	out.Render()
	return nil
}

func printPolicy(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	scoreReader, err := scoreReader(v, inv)
	if err != nil {
		return err
	}

	disputeReader, err := disputeReader(v, inv)
	if err != nil {
		return err
	}

	policy, err := scoreReader.Policy()
	if err != nil {
		return fmt.Errorf("read score policy: %w", fault.Classify(err))
	}
	if len(policy) < 3 {
		return fmt.Errorf("unexpected score policy length %d", len(policy))
	}

	reward, err := scoreReader.Reward()
	if err != nil {
		return fmt.Errorf("read reward: %w", fault.Classify(err))
	}

	pool, err := scoreReader.RewardPool()
	if err != nil {
		return fmt.Errorf("read reward pool: %w", fault.Classify(err))
	}

	deposit, err := disputeReader.Deposit()
	if err != nil {
		return fmt.Errorf("read dispute deposit: %w", fault.Classify(err))
	}

	period, err := disputeReader.VotingPeriod()
	if err != nil {
		return fmt.Errorf("read voting period: %w", fault.Classify(err))
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"Parameter", "Value"})
	out.AppendBulk([][]string{
		{"Smoothing weight", fixed(policy[0])},
		{"Confidence decay per vote", fixed(policy[1])},
		{"Confidence restore per vote", fixed(policy[2])},
		{"Reward per rating", fixed(reward)},
		{"Reward pool", fixed(pool)},
		{"Dispute deposit", fixed(deposit)},
		{"Voting period, ms", period.String()},
	})
	out.Render()

	return nil
}

func printScore(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	r, err := scoreReader(v, inv)
	if err != nil {
		return err
	}

	rec, err := r.GetScore(id)
	if err != nil {
		return fmt.Errorf("read score %s: %w", id, fault.Classify(err))
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"ID", "Handoff", "Rater", "Ratee", "Dimension", "Value", "Time"})
	out.Append(scoreRow(rec))
	out.Render()

	return nil
}

func scoreRow(rec *score.ScoreScoreRecord) []string {
	return []string{
		rec.ID.String(),
		rec.HandoffID.String(),
		hashString(rec.Rater),
		hashString(rec.Ratee),
		dimensionName(rec.Dimension),
		rec.Value.String(),
		timestamp(rec.Timestamp),
	}
}

func printPartyScores(cmd *cobra.Command, args []string) error {
	party, err := parseHash(args[0])
	if err != nil {
		return err
	}

	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	regHash, err := contractHash(v, contracts.RegistryDir)
	if err != nil {
		return err
	}

	r, err := scoreReader(v, inv)
	if err != nil {
		return err
	}

	partyRole, err := registry.NewReader(inv, regHash).RoleOf(party)
	if err != nil {
		return fmt.Errorf("read role: %w", fault.Classify(err))
	}

	conf, err := r.Confidence(party)
	if err != nil {
		return fmt.Errorf("read confidence: %w", fault.Classify(err))
	}

	dims, err := r.ApplicableDimensions(party)
	if err != nil {
		return fmt.Errorf("read applicable dimensions: %w", fault.Classify(err))
	}

	cmd.Printf("Party:      %s\n", hashString(party))
	cmd.Printf("Role:       %s\n", roleName(partyRole))
	cmd.Printf("Confidence: %s\n", confidence(conf))

	if len(dims) > 0 {
		global := tablewriter.NewWriter(cmd.OutOrStdout())
		global.SetHeader([]string{"Dimension", "Global score"})
		for _, dim := range dims {
			s, err := r.GlobalScore(party, dim)
			if err != nil {
				return fmt.Errorf("read global score for %s: %w", dimensionName(dim), fault.Classify(err))
			}
			global.Append([]string{dimensionName(dim), fixed(s)})
		}
		global.Render()
	}

	recs, err := r.ScoresOf(party)
	if err != nil {
		return fmt.Errorf("read score records: %w", fault.Classify(err))
	}

	if len(recs) == 0 {
		cmd.Println("No score records")
		return nil
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"ID", "Handoff", "Rater", "Ratee", "Dimension", "Value", "Time"})
	for _, rec := range recs {
		out.Append(scoreRow(rec))
	}
	out.Render()

	return nil
}

func printHandoff(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	h, err := contractHash(v, contracts.HandoffDir)
	if err != nil {
		return err
	}

	r := handoff.NewReader(inv, h)

	ho, err := r.GetHandoff(id)
	if err != nil {
		return fmt.Errorf("read handoff %s: %w", id, fault.Classify(err))
	}

	prov, err := r.ProvenanceOf(id)
	if err != nil {
		return fmt.Errorf("read provenance of handoff %s: %w", id, fault.Classify(err))
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetHeader([]string{"ID", "Seller", "Buyer", "Asset", "Status", "Previous", "Created"})
	out.Append([]string{
		ho.ID.String(),
		hashString(ho.Seller),
		hashString(ho.Buyer),
		ho.AssetID.String(),
		handoffStatusName(ho.Status),
		ho.Previous.String(),
		timestamp(ho.CreatedAt),
	})
	out.Render()

	cmd.Printf("Provenance: %s\n", joinIDs(prov))

	return nil
}

func printDispute(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	v := viper.GetViper()

	inv, closeFn, err := newInvoker(v)
	if err != nil {
		return fmt.Errorf("can't create N3 client: %w", err)
	}
	defer closeFn()

	r, err := disputeReader(v, inv)
	if err != nil {
		return err
	}

	d, err := r.GetDispute(id)
	if err != nil {
		return fmt.Errorf("read dispute %s: %w", id, fault.Classify(err))
	}

	ballots, err := r.Ballots(id)
	if err != nil {
		return fmt.Errorf("read ballots of dispute %s: %w", id, fault.Classify(err))
	}

	out := tablewriter.NewWriter(cmd.OutOrStdout())
	out.SetAutoWrapText(false)
	out.AppendBulk([][]string{
		{"ID", d.ID.String()},
		{"Handoff", d.HandoffID.String()},
		{"Dimension", dimensionName(d.Dimension)},
		{"Score", d.ScoreID.String()},
		{"Challenger", hashString(d.Challenger)},
		{"Respondent", hashString(d.Respondent)},
		{"Challenger deposit", fixed(d.ChallengerDeposit)},
		{"Respondent deposit", fixed(d.RespondentDeposit)},
		{"Voting deadline", timestamp(d.VotingDeadline)},
		{"Votes for respondent", d.VotesForRespondent.String()},
		{"Votes for challenger", d.VotesForChallenger.String()},
		{"Outcome", outcomeName(d.Outcome)},
		{"Finalized", strconv.FormatBool(d.Finalized)},
	})
	out.Render()

	if len(ballots) == 0 {
		return nil
	}

	bt := tablewriter.NewWriter(cmd.OutOrStdout())
	bt.SetHeader([]string{"Voter", "Supports"})
	for _, b := range ballots {
		side := "challenger"
		if b.SupportRespondent {
			side = "respondent"
		}
		bt.Append([]string{hashString(b.Voter), side})
	}
	bt.Render()

	return nil
}

func scoreReader(v *viper.Viper, inv *invoker.Invoker) (*score.ContractReader, error) {
	h, err := contractHash(v, contracts.ScoreDir)
	if err != nil {
		return nil, err
	}
	return score.NewReader(inv, h), nil
}

func disputeReader(v *viper.Viper, inv *invoker.Invoker) (*dispute.ContractReader, error) {
	h, err := contractHash(v, contracts.DisputeDir)
	if err != nil {
		return nil, err
	}
	return dispute.NewReader(inv, h), nil
}

func joinIDs(ids []*big.Int) string {
	if len(ids) == 0 {
		return "-"
	}

	ss := make([]string, len(ids))
	for i := range ids {
		ss[i] = ids[i].String()
	}
	return strings.Join(ss, " <- ")
}
