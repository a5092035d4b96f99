package main

import (
	"fmt"
	"os"
	"time"

	tournamentservice "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/application"
	tournamenttime "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/time_utils"
	tournamentutil "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/utils"
	tournamentevents "github.com/Arcadelis/arcadis-scoring/internal/events/tournament"
	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/urfave/cli/v2"
)

func tournamentCommand() *cli.Command {
	return &cli.Command{
		Name:  "tournament",
		Usage: "manage tournaments",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "create a tournament",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "tournament ID"},
					&cli.StringFlag{Name: "game", Required: true, Usage: "game ID"},
					&cli.StringFlag{Name: "start", Required: true, Usage: `start time ("tomorrow 6pm", RFC 3339)`},
					&cli.StringFlag{Name: "end", Required: true, Usage: `end time ("friday at 9pm", RFC 3339)`},
					&cli.StringFlag{Name: "timezone", Value: "UTC", Usage: "timezone for natural-language times"},
					&cli.IntFlag{Name: "max-entries", Value: 100, Usage: "entry cap (1-10000)"},
				},
				Action: runTournamentCreate,
			},
			{
				Name:  "get",
				Usage: "show one tournament",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "tournament ID"},
				},
				Action: runTournamentGet,
			},
			{
				Name:  "results",
				Usage: "show final standings of an ended tournament",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "tournament ID"},
					&cli.StringFlag{Name: "xlsx", Usage: "also write standings to this .xlsx file"},
				},
				Action: runTournamentResults,
			},
			{
				Name:  "standings",
				Usage: "show a page of a tournament's current standings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true, Usage: "tournament ID"},
					&cli.IntFlag{Name: "page", Value: 0, Usage: "zero-based page"},
					&cli.IntFlag{Name: "page-size", Value: 25, Usage: "entries per page"},
				},
				Action: runTournamentStandings,
			},
			{
				Name:  "list-active",
				Usage: "list active tournaments",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "game", Usage: "filter by game ID"},
				},
				Action: runTournamentListActive,
			},
		},
	}
}

// parseEventTime accepts RFC 3339 directly and falls back to
// natural-language parsing anchored to the current time.
func parseEventTime(input, timezone string) (sharedtypes.Timestamp, error) {
	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return sharedtypes.TimestampFromTime(t), nil
	}
	return tournamenttime.NewTimeParser().ParseScheduleInput(input, timezone, tournamentutil.RealClock{})
}

func runTournamentCreate(c *cli.Context) error {
	start, err := parseEventTime(c.String("start"), c.String("timezone"))
	if err != nil {
		return fmt.Errorf("invalid start time: %w", err)
	}
	end, err := parseEventTime(c.String("end"), c.String("timezone"))
	if err != nil {
		return fmt.Errorf("invalid end time: %w", err)
	}

	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := tournamentevents.TournamentCreateRequestedPayloadV1{
		TournamentID: sharedtypes.TournamentID(c.String("id")),
		GameID:       sharedtypes.GameID(c.String("game")),
		StartTime:    start,
		EndTime:      end,
		MaxEntries:   c.Int("max-entries"),
	}

	reply, topic, err := cl.request(c.Context,
		tournamentevents.TournamentCreateRequestedV1, payload,
		tournamentevents.TournamentCreatedV1,
		tournamentevents.TournamentCreationFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == tournamentevents.TournamentCreationFailedV1 {
		var failed tournamentevents.TournamentCreationFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("creation rejected (%s): %s", failed.Code, failed.Reason)
	}

	var created tournamentevents.TournamentCreatedPayloadV1
	if err := cl.decodeReply(reply, &created); err != nil {
		return err
	}
	fmt.Printf("Created tournament %s for game %s\n", created.TournamentID, created.GameID)
	return nil
}

func runTournamentGet(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := tournamentevents.TournamentRetrievalRequestedPayloadV1{
		TournamentID: sharedtypes.TournamentID(c.String("id")),
	}

	reply, topic, err := cl.request(c.Context,
		tournamentevents.TournamentRetrievalRequestedV1, payload,
		tournamentevents.TournamentRetrievedV1,
		tournamentevents.TournamentRetrievalFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == tournamentevents.TournamentRetrievalFailedV1 {
		var failed tournamentevents.TournamentRetrievalFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("retrieval failed (%s): %s", failed.Code, failed.Reason)
	}

	var retrieved tournamentevents.TournamentRetrievedPayloadV1
	if err := cl.decodeReply(reply, &retrieved); err != nil {
		return err
	}
	t := retrieved.Tournament
	fmt.Printf("Tournament %s (game %s)\n", t.TournamentID, t.GameID)
	fmt.Printf("  Status:  %s\n", t.Status)
	fmt.Printf("  Window:  %s - %s\n", formatTimestamp(t.StartTime), formatTimestamp(t.EndTime))
	fmt.Printf("  Entries: %d / %d\n", len(t.Entries), t.MaxEntries)
	printEntries(t.Entries)
	return nil
}

func runTournamentResults(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := tournamentevents.TournamentResultsRequestedPayloadV1{
		TournamentID: sharedtypes.TournamentID(c.String("id")),
	}

	reply, topic, err := cl.request(c.Context,
		tournamentevents.TournamentResultsRequestedV1, payload,
		tournamentevents.TournamentResultsRetrievedV1,
		tournamentevents.TournamentResultsFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == tournamentevents.TournamentResultsFailedV1 {
		var failed tournamentevents.TournamentResultsFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("results unavailable (%s): %s", failed.Code, failed.Reason)
	}

	var results tournamentevents.TournamentResultsRetrievedPayloadV1
	if err := cl.decodeReply(reply, &results); err != nil {
		return err
	}
	fmt.Printf("Final standings for %s (game %s):\n", results.TournamentID, results.GameID)
	printEntries(results.Results)

	if path := c.String("xlsx"); path != "" {
		workbook, err := tournamentservice.BuildResultsWorkbook(&tournamentservice.TournamentResults{
			TournamentID: results.TournamentID,
			GameID:       results.GameID,
			Results:      results.Results,
		})
		if err != nil {
			return fmt.Errorf("failed to build workbook: %w", err)
		}
		if err := os.WriteFile(path, workbook, 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

func runTournamentStandings(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := tournamentevents.TournamentLeaderboardRequestedPayloadV1{
		TournamentID: sharedtypes.TournamentID(c.String("id")),
		Page:         c.Int("page"),
		PageSize:     c.Int("page-size"),
	}

	reply, topic, err := cl.request(c.Context,
		tournamentevents.TournamentLeaderboardRequestedV1, payload,
		tournamentevents.TournamentLeaderboardRetrievedV1,
		tournamentevents.TournamentLeaderboardFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == tournamentevents.TournamentLeaderboardFailedV1 {
		var failed tournamentevents.TournamentLeaderboardFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("standings unavailable (%s): %s", failed.Code, failed.Reason)
	}

	var page tournamentevents.TournamentLeaderboardRetrievedPayloadV1
	if err := cl.decodeReply(reply, &page); err != nil {
		return err
	}
	fmt.Printf("Standings for %s, page %d (%d total):\n", page.TournamentID, page.Page, page.Total)
	printEntries(page.Entries)
	return nil
}

func runTournamentListActive(c *cli.Context) error {
	cl, err := newClient(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	payload := tournamentevents.TournamentListActiveRequestedPayloadV1{
		GameID: sharedtypes.GameID(c.String("game")),
	}

	reply, topic, err := cl.request(c.Context,
		tournamentevents.TournamentListActiveRequestedV1, payload,
		tournamentevents.TournamentListActiveRetrievedV1,
		tournamentevents.TournamentListActiveFailedV1,
	)
	if err != nil {
		return err
	}

	if topic == tournamentevents.TournamentListActiveFailedV1 {
		var failed tournamentevents.TournamentListActiveFailedPayloadV1
		if err := cl.decodeReply(reply, &failed); err != nil {
			return err
		}
		return fmt.Errorf("listing failed (%s): %s", failed.Code, failed.Reason)
	}

	var list tournamentevents.TournamentListActiveRetrievedPayloadV1
	if err := cl.decodeReply(reply, &list); err != nil {
		return err
	}
	if len(list.Tournaments) == 0 {
		fmt.Println("No active tournaments.")
		return nil
	}
	for _, t := range list.Tournaments {
		fmt.Printf("%s  game=%s  entries=%d/%d  ends=%s\n",
			t.TournamentID, t.GameID, t.EntryCount, t.MaxEntries, formatTimestamp(t.EndTime))
	}
	return nil
}

func printEntries(entries []sharedtypes.RankedEntry) {
	for _, e := range entries {
		fmt.Printf("  %4d. %-24s %d\n", e.Rank, e.PlayerID, e.Score)
	}
}

func formatTimestamp(ts sharedtypes.Timestamp) string {
	return ts.AsTime().UTC().Format(time.RFC3339)
}
