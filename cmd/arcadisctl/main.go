// arcadisctl is the operator CLI for the scoring backend. It speaks the
// same versioned NATS topics as the service, authenticating against the
// auth module's token endpoint.
package main

import (
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "arcadisctl",
		Usage: "operate tournaments, scores, and leaderboards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "nats-url",
				Value:   "nats://localhost:4222",
				Usage:   "NATS server URL",
				EnvVars: []string{"NATS_URL"},
			},
			&cli.StringFlag{
				Name:    "auth-url",
				Value:   "http://localhost:8080",
				Usage:   "base URL of the auth HTTP listener",
				EnvVars: []string{"AUTH_URL"},
			},
			&cli.StringFlag{
				Name:    "client-id",
				Usage:   "OAuth2 client ID",
				EnvVars: []string{"CLIENT_ID"},
			},
			&cli.StringFlag{
				Name:    "client-secret",
				Usage:   "OAuth2 client secret",
				EnvVars: []string{"CLIENT_SECRET"},
			},
			&cli.StringFlag{
				Name:    "subject",
				Usage:   "token subject; defaults to the client ID",
				EnvVars: []string{"AUTH_SUBJECT"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "how long to wait for a reply",
			},
		},
		Commands: []*cli.Command{
			tournamentCommand(),
			scoresCommand(),
			playerCommand(),
			leaderboardCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
