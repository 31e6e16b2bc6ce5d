package redis_client

import (
	"context"
	"strconv"

	"github.com/busmitra/busmitra/pkg/util"
	"github.com/redis/go-redis/v9"
)

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect opens the Redis connection used for read-through caching. Redis is
// optional infrastructure; callers decide what to do when it is unreachable.
func Connect(ctx context.Context) (*redis.Client, error) {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["BUSMITRA_REDIS_ADDRESS"] != "" {
		address = env["BUSMITRA_REDIS_ADDRESS"]
	}

	if env["BUSMITRA_REDIS_PASSWORD"] != "" {
		password = env["BUSMITRA_REDIS_PASSWORD"]
	}

	if env["BUSMITRA_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["BUSMITRA_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return nil, err
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
