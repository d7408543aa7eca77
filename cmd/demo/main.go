// Command demo runs a scripted session against the demo store and prints the
// state after every step.
//
// Configuration is via environment variables (a .env file is loaded if present):
//
//	REDUCE_LOG_LEVEL  - debug shows every dispatched action (default: info)
//	REDUCE_LOAD_DELAY - Simulated todo backend latency (default: 200ms)
//
// Usage:
//
//	go run ./cmd/demo
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/spetersoncode/reduce"
	"github.com/spetersoncode/reduce/internal/demo"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("REDUCE_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	delay := 200 * time.Millisecond
	if d, err := time.ParseDuration(os.Getenv("REDUCE_LOAD_DELAY")); err == nil {
		delay = d
	}

	app := demo.New(demo.SeedLoader(delay), logger)
	var notifications atomic.Int64
	unsubscribe := app.Store.Subscribe(func() { notifications.Add(1) })
	defer unsubscribe()

	fmt.Println("╔════════════════════════════════════════╗")
	fmt.Println("║       reduce - State Container Demo    ║")
	fmt.Println("╚════════════════════════════════════════╝")
	fmt.Println()

	printState("initial state", app)

	counter := app.Counter.Actions
	app.Store.Dispatch(ctx, counter["increment"].Create(nil))
	app.Store.Dispatch(ctx, counter["setStep"].Create(10))
	app.Store.Dispatch(ctx, counter["increment"].Create(nil))
	printState("after counter/increment, counter/setStep(10), counter/increment", app)

	todos := app.Todos.Actions
	app.Store.Dispatch(ctx, todos["add"].Create("Try the async thunk"))
	app.Store.Dispatch(ctx, todos["toggle"].Create(1))
	printState("after todos/add and todos/toggle", app)

	fmt.Println("Loading the inbox list...")
	res := app.LoadTodos.Dispatch(ctx, app.Store.Dispatch, "inbox")
	printState("while pending", app)

	if _, err := app.LoadTodos.Dispatch(ctx, app.Store.Dispatch, "work").Wait(ctx); errors.Is(err, reduce.ErrConditionNotMet) {
		fmt.Println("  ✓ second load skipped while the first is in flight")
		fmt.Println()
	}

	items, err := res.Unwrap(ctx)
	if err != nil {
		fmt.Printf("  ✗ load failed: %v\n", err)
	} else {
		fmt.Printf("  ✓ loaded %d todos (request %s)\n\n", len(items), res.RequestID())
	}
	printState("after todos/load/fulfilled", app)

	fmt.Println("Loading an unknown list...")
	if _, err := app.LoadTodos.Dispatch(ctx, app.Store.Dispatch, "nowhere").Unwrap(ctx); err != nil {
		fmt.Printf("  ✓ rejected: %v\n\n", err)
	}
	printState("after todos/load/rejected", app)

	fmt.Printf("Subscribers were notified %d times.\n", notifications.Load())
}

func printState(title string, app *demo.App) {
	data, err := json.MarshalIndent(app.Store.GetState(), "", "  ")
	if err != nil {
		fmt.Printf("── %s: %v\n", title, err)
		return
	}
	fmt.Printf("── %s\n%s\n\n", title, data)
}
