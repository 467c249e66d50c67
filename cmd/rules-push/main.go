package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jwebster45206/tactics-console/internal/rulesfeed"
	"github.com/redis/go-redis/v9"
)

// rules-push publishes rules-feed messages, one JSON object per argument:
//
//	rules-push '{"type":"phase","phase":"firing"}' '{"type":"target","available":true}'
func main() {
	redisURL := flag.String("redis", getEnv("REDIS_URL", "redis://localhost:6379"), "redis URL")
	channel := flag.String("channel", getEnv("RULES_CHANNEL", "menu-rules"), "rules channel")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: rules-push [-redis url] [-channel name] '<json message>'...")
		os.Exit(2)
	}

	messages := make([]rulesfeed.Message, 0, flag.NArg())
	for _, arg := range flag.Args() {
		var msg rulesfeed.Message
		if err := json.Unmarshal([]byte(arg), &msg); err != nil {
			log.Fatalf("Invalid message %q: %v", arg, err)
		}
		if msg.Type == "" {
			log.Fatalf("Message %q has no type", arg)
		}
		messages = append(messages, msg)
	}

	redisOpts, err := redis.ParseURL(*redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	for _, msg := range messages {
		if err := rulesfeed.Publish(ctx, client, *channel, msg); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Published %s to %s\n", msg.Type, *channel)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
