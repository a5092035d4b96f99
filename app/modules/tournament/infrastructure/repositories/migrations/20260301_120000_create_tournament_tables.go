package migrations

import (
	"context"
	"fmt"

	tournamentdb "github.com/Arcadelis/arcadis-scoring/app/modules/tournament/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating tournaments table...")
			if _, err := db.NewCreateTable().Model((*tournamentdb.Tournament)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("Creating tournament_index table...")
			if _, err := db.NewCreateTable().Model((*tournamentdb.TournamentIndex)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("tournament tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping tournament tables...")
			if _, err := db.NewDropTable().Model((*tournamentdb.TournamentIndex)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*tournamentdb.Tournament)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("tournament tables dropped successfully!")
			return nil
		},
	)
}
