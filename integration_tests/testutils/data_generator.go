package testutils

import (
	"fmt"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/sharedtypes"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator produces deterministic test data when seeded.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator. Pass a seed for deterministic
// output; omit it for time-based seeding.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s))}
}

// GeneratePlayers returns count distinct player IDs.
func (g *TestDataGenerator) GeneratePlayers(count int) []sharedtypes.PlayerID {
	players := make([]sharedtypes.PlayerID, count)
	for i := range players {
		players[i] = sharedtypes.PlayerID(fmt.Sprintf("%s-%s", g.faker.Gamertag(), g.faker.Numerify("####")))
	}
	return players
}

// GenerateTournamentID returns a unique tournament ID.
func (g *TestDataGenerator) GenerateTournamentID() sharedtypes.TournamentID {
	return sharedtypes.TournamentID(g.faker.Numerify("tournament-########"))
}

// GenerateGameID returns a game identifier.
func (g *TestDataGenerator) GenerateGameID() sharedtypes.GameID {
	return sharedtypes.GameID(g.faker.Numerify("game-####"))
}

// GenerateScore returns a score in a realistic range.
func (g *TestDataGenerator) GenerateScore() sharedtypes.Score {
	return sharedtypes.Score(g.faker.Number(0, 100000))
}

// ActiveWindow returns a start/end pair bracketing now.
func ActiveWindow(now time.Time) (sharedtypes.Timestamp, sharedtypes.Timestamp) {
	return sharedtypes.TimestampFromTime(now.Add(-time.Hour)),
		sharedtypes.TimestampFromTime(now.Add(time.Hour))
}
