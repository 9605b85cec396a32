package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/pior/redis"
)

type config struct {
	addr        string
	concurrency int
	count       int64
	op          string
}

func main() {
	_ = godotenv.Load()

	defaultAddr := os.Getenv("REDIS_ADDR")
	if defaultAddr == "" {
		defaultAddr = "127.0.0.1:6379"
	}

	cfg := config{}
	flag.StringVar(&cfg.addr, "addr", defaultAddr, "redis server address")
	flag.IntVar(&cfg.concurrency, "concurrency", 8, "number of concurrent workers, one connection each")
	flag.Int64Var(&cfg.count, "count", 100_000, "target operation count")
	flag.StringVar(&cfg.op, "op", "set", "operation to run: set, get or incr")
	flag.Parse()

	operation, ok := operations[cfg.op]
	if !ok {
		log.Fatalf("Invalid op: %s (must be 'set', 'get' or 'incr')", cfg.op)
	}

	fmt.Printf("Redis Speed Test\n")
	fmt.Printf("================\n")
	fmt.Printf("Server:      %s\n", cfg.addr)
	fmt.Printf("Operation:   %s\n", cfg.op)
	fmt.Printf("Concurrency: %d\n", cfg.concurrency)
	fmt.Printf("Count:       %d\n\n", cfg.count)

	var completed atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	for workerID := 0; workerID < cfg.concurrency; workerID++ {
		wg.Add(1)
		workerID := workerID
		go func() {
			defer wg.Done()
			runWorker(cfg, workerID, operation, &completed)
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	count := completed.Load()
	if count == 0 {
		log.Fatal("no operations completed")
	}

	fmt.Printf("Completed:   %d ops\n", count)
	fmt.Printf("Duration:    %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Throughput:  %.0f ops/sec\n", float64(count)/elapsed.Seconds())
	fmt.Printf("Avg latency: %s\n", (elapsed * time.Duration(cfg.concurrency) / time.Duration(count)).Round(time.Microsecond))
}

type operationFunc func(ctx context.Context, client *redis.Client, workerID int, n int64) error

var operations = map[string]operationFunc{
	"set": func(ctx context.Context, client *redis.Client, workerID int, n int64) error {
		return client.Set(ctx, fmt.Sprintf("bench:%d:%d", workerID, n%1000), []byte("benchmark-value"))
	},
	"get": func(ctx context.Context, client *redis.Client, workerID int, n int64) error {
		_, err := client.Get(ctx, fmt.Sprintf("bench:%d:%d", workerID, n%1000))
		return err
	},
	"incr": func(ctx context.Context, client *redis.Client, workerID int, n int64) error {
		_, err := client.Incr(ctx, fmt.Sprintf("bench:counter:%d", workerID))
		return err
	},
}

func runWorker(cfg config, workerID int, operation operationFunc, completed *atomic.Int64) {
	client, err := redis.NewClient(cfg.addr, redis.Config{})
	if err != nil {
		log.Printf("worker %d: %v", workerID, err)
		return
	}
	defer client.Close()

	ctx := context.Background()
	for n := completed.Add(1); n <= cfg.count; n = completed.Add(1) {
		if err := operation(ctx, client, workerID, n); err != nil {
			log.Printf("worker %d: %v", workerID, err)
			completed.Add(-1)
			return
		}
	}
	completed.Add(-1) // the increment that overshot the target
}
