package main

import (
	"fmt"
	"os"

	scoreparsers "github.com/Arcadelis/arcadis-scoring/app/modules/score/application/parsers"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/urfave/cli/v2"
)

func scoresCommand() *cli.Command {
	return &cli.Command{
		Name:  "scores",
		Usage: "submit scores",
		Subcommands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "submit one score",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tournament", Required: true, Usage: "tournament ID"},
					&cli.StringFlag{Name: "player", Required: true, Usage: "player ID"},
					&cli.Int64Flag{Name: "score", Required: true, Usage: "score value"},
				},
				Action: runScoreSubmit,
			},
			{
				Name:      "import",
				Usage:     "submit scores from an .xlsx scoresheet",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tournament", Required: true, Usage: "tournament ID"},
				},
				Action: runScoreImport,
			},
		},
	}
}

func runScoreSubmit(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	return submitScore(c, cl,
		sharedtypes.TournamentID(c.String("tournament")),
		sharedtypes.PlayerID(c.String("player")),
		sharedtypes.Score(c.Int64("score")),
	)
}

func runScoreImport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("scoresheet file required")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open scoresheet: %w", err)
	}
	defer f.Close()

	drafts, err := scoreparsers.ParseScoresheet(f)
	if err != nil {
		return fmt.Errorf("failed to parse scoresheet: %w", err)
	}

	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	tournamentID := sharedtypes.TournamentID(c.String("tournament"))
	var failures int
	for _, draft := range drafts {
		if err := submitScore(c, cl, tournamentID, draft.PlayerID, draft.Score); err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", draft.PlayerID, err)
			failures++
		}
	}

	fmt.Printf("Imported %d of %d submissions\n", len(drafts)-failures, len(drafts))
	if failures > 0 {
		return fmt.Errorf("%d submissions rejected", failures)
	}
	return nil
}

func submitScore(c *cli.Context, cl *client, tournamentID sharedtypes.TournamentID, playerID sharedtypes.PlayerID, score sharedtypes.Score) error {
	payload := scoreevents.ScoreSubmissionRequestedPayloadV1{
		TournamentID: tournamentID,
		PlayerID:     playerID,
		Score:        score,
	}

	reply, topic, err := cl.request(c.Context,
		scoreevents.ScoreSubmissionRequestedV1, payload,
		scoreevents.ScoreSubmittedV1,
		scoreevents.ScoreSubmissionFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == scoreevents.ScoreSubmissionFailedV1 {
		var failed scoreevents.ScoreSubmissionFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("submission rejected (%s): %s", failed.Code, failed.Reason)
	}

	var submitted scoreevents.ScoreSubmittedPayloadV1
	if err := cl.decodeReply(reply, &submitted); err != nil {
		return err
	}
	fmt.Printf("Submitted %d for %s in %s, rank %d\n",
		submitted.Score, submitted.PlayerID, submitted.TournamentID, submitted.Rank)
	return nil
}
