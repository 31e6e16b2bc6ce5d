package api

import (
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the fleet tracking web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					instance, err := database.Connect(c.Context)
					if err != nil {
						return err
					}

					redisClient, err := redis_client.Connect(c.Context)
					if err != nil {
						// ETA lookups fall back to direct route reads when the
						// cache is unavailable.
						log.Warn().Err(err).Msg("Redis unavailable, running without route cache")
						redisClient = nil
					}

					return SetupServer(c.String("listen"), instance, redisClient)
				},
			},
		},
	}
}
