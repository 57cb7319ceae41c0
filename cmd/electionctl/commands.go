// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/election-ledger/auth"
	"github.com/danielhkuo/election-ledger/ledger"
)

func parseID(raw, what string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &ledger.Error{Kind: ledger.KindInvalidInput, Msg: fmt.Sprintf("%s must be a non-negative integer, got %q", what, raw)}
	}
	return id, nil
}

func newAddCandidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-candidate <election-id> <name>",
		Short: "Stage a candidate for an election (admin)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseID(args[0], "election id")
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")

			id, err := opts.client().AddCandidate(cmd.Context(), electionID, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "staged candidate %d %q for election %d\n", id, name, electionID)
			return nil
		},
	}
}

func newCreateElectionCmd(opts *globalOptions) *cobra.Command {
	var electionID uint64
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "create-election <name>",
		Short: "Open an election with the staged candidates (admin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			resp, err := opts.client().CreateElection(cmd.Context(), electionID, name, duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created election %d %q, closes %s\n",
				resp.ElectionID, name, resp.EndTime.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&electionID, "id", 0, "Election id (0 picks the next free id)")
	cmd.Flags().DurationVar(&duration, "duration", time.Hour, "How long voting stays open, in whole seconds")
	return cmd
}

func newVoteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <election-id> <candidate-id>",
		Short: "Cast the caller's vote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseID(args[0], "election id")
			if err != nil {
				return err
			}
			candidateID, err := parseID(args[1], "candidate id")
			if err != nil {
				return err
			}

			if err := opts.client().Vote(cmd.Context(), electionID, candidateID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "voted for candidate %d in election %d\n", candidateID, electionID)
			return nil
		},
	}
}

func newCandidatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <election-id>",
		Short: "List candidates and their tallies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseID(args[0], "election id")
			if err != nil {
				return err
			}

			resp, err := opts.client().Candidates(cmd.Context(), electionID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVOTES")
			for i := range resp.IDs {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", resp.IDs[i], resp.Names[i], formatCount(resp.VoteCounts[i]))
			}
			return tw.Flush()
		},
	}
}

func newWinnerCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "winner <election-id>",
		Short: "Show the winner of a closed election",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseID(args[0], "election id")
			if err != nil {
				return err
			}

			w, err := opts.client().Winner(cmd.Context(), electionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (candidate %d) with %s\n", w.Name, w.ID, votesLabel(w.VoteCount))
			return nil
		},
	}
}

func newElectionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "election <election-id>",
		Short: "Show an election's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			electionID, err := parseID(args[0], "election id")
			if err != nil {
				return err
			}

			e, err := opts.client().Election(cmd.Context(), electionID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "election %d", e.ID)
			if e.Name != "" {
				fmt.Fprintf(out, " %q", e.Name)
			}
			fmt.Fprintf(out, ": %s, %d candidates, %s\n", e.Status, e.CandidateCount, votesLabel(e.VotesCast))
			if e.EndTime != nil {
				fmt.Fprintf(out, "ends %s", e.EndTime.Format(time.RFC3339))
				if e.ClosesIn != "" {
					fmt.Fprintf(out, " (%s)", e.ClosesIn)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newCountCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show how many elections have been created",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := opts.client().ElectionsCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newKeygenCmd(opts *globalOptions) *cobra.Command {
	var salt string

	cmd := &cobra.Command{
		Use:   "keygen <identity>",
		Short: "Print the caller key for an identity",
		Long: "With --salt the key is derived locally. Otherwise the server issues it,\n" +
			"which requires --caller and --key of the admin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := args[0]
			if err := auth.ValidateIdentity(identity); err != nil {
				return &ledger.Error{Kind: ledger.KindInvalidInput, Msg: err.Error()}
			}

			if salt != "" {
				fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateCallerKey(identity, salt))
				return nil
			}

			key, err := opts.client().IssueCallerKey(cmd.Context(), identity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&salt, "salt", "", "Caller key salt for offline derivation")
	return cmd
}

// formatCount renders a tally with thousands separators over the full uint64 range
func formatCount(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}

func votesLabel(n uint64) string {
	if n == 1 {
		return "1 vote"
	}
	return formatCount(n) + " votes"
}
