package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/yogaprasetya/go-storefront/app/configs"
	"github.com/yogaprasetya/go-storefront/app/db/seeders"
	"github.com/yogaprasetya/go-storefront/app/models/migrations"
	"github.com/yogaprasetya/go-storefront/app/repositories"
	"github.com/yogaprasetya/go-storefront/app/services"
	"github.com/yogaprasetya/go-storefront/app/utils/sessions"
)

func newCleanupService() (*services.CleanupService, error) {
	db, err := configs.OpenConnection()
	if err != nil {
		return nil, err
	}
	redisClient, err := configs.OpenRedis()
	if err != nil {
		return nil, err
	}

	cartConfig := configs.LoadCartConfig()
	guestStore := sessions.NewRedisGuestStore(redisClient, sessions.GuestCookieLifetime)

	return services.NewCleanupService(
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewStockReservationRepository(db),
		guestStore,
		cartConfig,
	), nil
}

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the database with sample catalog data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSessionKeys()
				},
			},
			{
				Name:  "clean:carts",
				Usage: "Delete guest carts past the configured expiration age",
				Action: func(ctx context.Context, c *cli.Command) error {
					svc, err := newCleanupService()
					if err != nil {
						return err
					}
					result, err := svc.CleanExpiredCarts(ctx)
					if err != nil {
						fmt.Printf("Cart cleanup failed: %v\n", err)
						return nil
					}
					if result.DeletedCarts == 0 {
						fmt.Println("No expired guest carts found.")
						return nil
					}
					fmt.Printf("Deleted %d expired guest cart(s) (%d item(s)).\n", result.DeletedCarts, result.DeletedItems)
					return nil
				},
			},
			{
				Name:  "clean:sessions",
				Usage: "Remove stale guest session records from the session store",
				Action: func(ctx context.Context, c *cli.Command) error {
					svc, err := newCleanupService()
					if err != nil {
						return err
					}
					removed, err := svc.CleanExpiredSessions(ctx)
					if err != nil {
						fmt.Printf("Session cleanup failed: %v\n", err)
						return nil
					}
					fmt.Printf("Removed %d expired guest session(s).\n", removed)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
