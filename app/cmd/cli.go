package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rmaulana/go-catalog/app/configs"
	"github.com/rmaulana/go-catalog/app/db/seeders"
	"github.com/rmaulana/go-catalog/app/helpers"
	"github.com/urfave/cli/v3"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication and encryption keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:      "hash-password",
				Usage:     "Hash an admin password for ADMIN_PASSWORD_HASH",
				ArgsUsage: "<password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					password := c.Args().First()
					if password == "" {
						return fmt.Errorf("usage: hash-password <password>")
					}
					hash := helpers.HashPassword(password)
					if hash == "" {
						return fmt.Errorf("failed to hash password")
					}
					fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Write a small sample catalog into the data directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					env := configs.LoadEnv()
					if err := seeders.Seed(env.DataDir); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
