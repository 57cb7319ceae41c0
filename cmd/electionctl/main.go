// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command electionctl drives an election ledger server from the shell.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/election-ledger/client"
	"github.com/danielhkuo/election-ledger/ledger"
)

// Exit codes, one per ledger error kind
const (
	exitOK               = 0
	exitFailure          = 1
	exitUnauthenticated  = 2
	exitUnauthorized     = 3
	exitInvalidInput     = 4
	exitAlreadyExists    = 5
	exitNotFound         = 6
	exitElectionEnded    = 7
	exitElectionNotEnded = 8
	exitAlreadyVoted     = 9
)

var kindExitCodes = map[ledger.Kind]int{
	ledger.KindUnauthorized:     exitUnauthorized,
	ledger.KindInvalidInput:     exitInvalidInput,
	ledger.KindAlreadyExists:    exitAlreadyExists,
	ledger.KindNotFound:         exitNotFound,
	ledger.KindElectionEnded:    exitElectionEnded,
	ledger.KindElectionNotEnded: exitElectionNotEnded,
	ledger.KindAlreadyVoted:     exitAlreadyVoted,
}

type globalOptions struct {
	server string
	caller string
	key    string
}

func (o *globalOptions) client() *client.Client {
	return client.New(o.server, o.caller, o.key)
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "electionctl",
		Short:         "Manage and vote in elections on an election ledger server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", envOr("ELECTION_SERVER", "http://localhost:3318"), "Server base URL (env ELECTION_SERVER)")
	flags.StringVar(&opts.caller, "caller", os.Getenv("ELECTION_CALLER"), "Caller identity (env ELECTION_CALLER)")
	flags.StringVar(&opts.key, "key", os.Getenv("ELECTION_KEY"), "Caller key (env ELECTION_KEY)")

	rootCmd.AddCommand(
		newAddCandidateCmd(opts),
		newCreateElectionCmd(opts),
		newVoteCmd(opts),
		newCandidatesCmd(opts),
		newWinnerCmd(opts),
		newElectionCmd(opts),
		newCountCmd(opts),
		newKeygenCmd(opts),
	)
	return rootCmd
}

// exitCode maps an error from a command to the process exit status
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return exitUnauthenticated
		}
		if code, ok := kindExitCodes[apiErr.Kind()]; ok {
			return code
		}
		return exitFailure
	}
	if code, ok := kindExitCodes[ledger.KindOf(err)]; ok {
		return code
	}
	return exitFailure
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "electionctl:", err)
	}
	os.Exit(exitCode(err))
}
