package bundb

import (
	"context"
	"database/sql"
	"fmt"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/Arcadelis/arcadis-scoring/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService bundles the module repositories over one connection pool.
type DBService struct {
	TournamentDB  *tournamentdb.TournamentDBImpl
	LeaderboardDB *leaderboarddb.LeaderboardDBImpl
	HistoryDB     *scoredb.HistoryDBImpl
	db            *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&tournamentdb.Tournament{})
	db.RegisterModel(&tournamentdb.TournamentIndex{})
	db.RegisterModel(&leaderboarddb.GlobalLeaderboard{})
	db.RegisterModel(&scoredb.PlayerHistory{})

	return &DBService{
		TournamentDB:  &tournamentdb.TournamentDBImpl{DB: db},
		LeaderboardDB: &leaderboarddb.LeaderboardDBImpl{DB: db},
		HistoryDB:     &scoredb.HistoryDBImpl{DB: db},
		db:            db,
	}, nil
}

// BunDB wraps an existing sql.DB connection in bun with the Postgres dialect.
func BunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

// NewTestDBService builds a DBService over an existing bun.DB. Used by
// integration tests that manage the connection themselves.
func NewTestDBService(db *bun.DB) *DBService {
	db.RegisterModel(&tournamentdb.Tournament{})
	db.RegisterModel(&tournamentdb.TournamentIndex{})
	db.RegisterModel(&leaderboarddb.GlobalLeaderboard{})
	db.RegisterModel(&scoredb.PlayerHistory{})

	return &DBService{
		TournamentDB:  &tournamentdb.TournamentDBImpl{DB: db},
		LeaderboardDB: &leaderboarddb.LeaderboardDBImpl{DB: db},
		HistoryDB:     &scoredb.HistoryDBImpl{DB: db},
		db:            db,
	}
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
