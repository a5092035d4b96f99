package migrations

import (
	"context"
	"fmt"

	leaderboarddb "github.com/Arcadelis/arcadis-scoring/app/modules/leaderboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating global_leaderboards table...")
			if _, err := db.NewCreateTable().Model((*leaderboarddb.GlobalLeaderboard)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("global_leaderboards table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping global_leaderboards table...")
			if _, err := db.NewDropTable().Model((*leaderboarddb.GlobalLeaderboard)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("global_leaderboards table dropped successfully!")
			return nil
		},
	)
}
