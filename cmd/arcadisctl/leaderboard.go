package main

import (
	"fmt"

	leaderboardevents "github.com/Arcadelis/arcadis-scoring/internal/events/leaderboard"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/urfave/cli/v2"
)

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "inspect global leaderboards",
		Subcommands: []*cli.Command{
			{
				Name:  "get",
				Usage: "show a page of a game's global leaderboard",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "game", Required: true, Usage: "game ID"},
					&cli.IntFlag{Name: "page", Value: 0, Usage: "zero-based page"},
					&cli.IntFlag{Name: "page-size", Value: 25, Usage: "entries per page"},
				},
				Action: runLeaderboardGet,
			},
		},
	}
}

func runLeaderboardGet(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := leaderboardevents.LeaderboardRetrievalRequestedPayloadV1{
		GameID:   sharedtypes.GameID(c.String("game")),
		Page:     c.Int("page"),
		PageSize: c.Int("page-size"),
	}

	reply, topic, err := cl.request(c.Context,
		leaderboardevents.LeaderboardRetrievalRequestedV1, payload,
		leaderboardevents.LeaderboardRetrievedV1,
		leaderboardevents.LeaderboardRetrievalFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == leaderboardevents.LeaderboardRetrievalFailedV1 {
		var failed leaderboardevents.LeaderboardRetrievalFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("leaderboard unavailable (%s): %s", failed.Code, failed.Reason)
	}

	var page leaderboardevents.LeaderboardRetrievedPayloadV1
	if err := cl.decodeReply(reply, &page); err != nil {
		return err
	}
	fmt.Printf("Global leaderboard for %s, page %d (%d total):\n", page.GameID, page.Page, page.Total)
	printEntries(page.Entries)
	return nil
}
