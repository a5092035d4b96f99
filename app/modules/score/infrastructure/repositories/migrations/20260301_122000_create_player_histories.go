package migrations

import (
	"context"
	"fmt"

	scoredb "github.com/Arcadelis/arcadis-scoring/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating player_histories table...")
			if _, err := db.NewCreateTable().Model((*scoredb.PlayerHistory)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("player_histories table created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping player_histories table...")
			if _, err := db.NewDropTable().Model((*scoredb.PlayerHistory)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("player_histories table dropped successfully!")
			return nil
		},
	)
}
