// Command keygen mints API keys for the validation service. It prints the raw
// key exactly once; only the SHA-256 hash is ever stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"addrgate/internal/apikey"
	platformredis "addrgate/internal/platform/redis"
)

func main() {
	var (
		add      = flag.Bool("add", false, "register the new key's hash in Redis")
		redisURL = flag.String("redis", "redis://localhost:6379/0", "Redis URL used with -add")
	)
	flag.Parse()

	raw, hash, err := apikey.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("api key:  %s\n", raw)
	fmt.Printf("key hash: %s\n", hash)

	if !*add {
		fmt.Println("\nrun with -add to register the hash, or add it manually:")
		fmt.Printf("  redis-cli SADD allowed_api_key_hashes %s\n", hash)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := platformredis.New(ctx, *redisURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := apikey.NewRedisStore(client.Client).Add(ctx, hash); err != nil {
		fmt.Fprintf(os.Stderr, "register key hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nkey hash registered")
}
