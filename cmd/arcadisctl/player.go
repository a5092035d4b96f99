package main

import (
	"fmt"
	"os"

	leaderboardservice "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/application"
	scoreevents "github.com/Arcadelis/arcadis-scoring/internal/events/score"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/urfave/cli/v2"
)

func playerCommand() *cli.Command {
	return &cli.Command{
		Name:  "player",
		Usage: "inspect players",
		Subcommands: []*cli.Command{
			{
				Name:  "history",
				Usage: "show a player's submission history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "player ID"},
					&cli.StringFlag{Name: "chart", Usage: "write a PNG chart to this path"},
				},
				Action: runPlayerHistory,
			},
		},
	}
}

func runPlayerHistory(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := scoreevents.ScoreHistoryRequestedPayloadV1{
		PlayerID: sharedtypes.PlayerID(c.String("id")),
	}

	reply, topic, err := cl.request(c.Context,
		scoreevents.ScoreHistoryRequestedV1, payload,
		scoreevents.ScoreHistoryRetrievedV1,
		scoreevents.ScoreHistoryFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == scoreevents.ScoreHistoryFailedV1 {
		var failed scoreevents.ScoreHistoryFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("history unavailable (%s): %s", failed.Code, failed.Reason)
	}

	var history scoreevents.ScoreHistoryRetrievedPayloadV1
	if err := cl.decodeReply(reply, &history); err != nil {
		return err
	}

	if len(history.Records) == 0 {
		fmt.Printf("No submissions recorded for %s\n", history.PlayerID)
	} else {
		fmt.Printf("History for %s (%d records, oldest first):\n", history.PlayerID, len(history.Records))
		for _, r := range history.Records {
			fmt.Printf("  %s  %-20s %-16s %d\n",
				formatTimestamp(r.Timestamp), r.TournamentID, r.GameID, r.Score)
		}
	}

	if chartPath := c.String("chart"); chartPath != "" {
		png, err := leaderboardservice.GenerateScoreHistoryChart(history.Records, leaderboardservice.DefaultChartPalette())
		if err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		if err := os.WriteFile(chartPath, png, 0o644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		fmt.Printf("Wrote chart to %s\n", chartPath)
	}

	return nil
}
