package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/dvloznov/monarch/internal/assistant"
	"github.com/dvloznov/monarch/internal/config"
	"github.com/dvloznov/monarch/internal/digest"
	"github.com/dvloznov/monarch/internal/logger"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/report"
	"github.com/dvloznov/monarch/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.NewWithLevel(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "digest":
		runDigest(cfg, log)
	case "ask":
		runAsk(cfg, log)
	case "summary":
		runSummary(cfg, log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Monarch CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  monarch <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  digest    Print the financial digest sent to the assistant")
	fmt.Println("  ask       Ask the assistant a one-shot question")
	fmt.Println("  summary   Print headline totals and progress")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'monarch <command> -h' for more information on a command.")
}

// openStore builds the store for the configured backend. The CLI shares the
// dashboard's data directory, so both see the same collections.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store.Store, func()) {
	switch cfg.DataBackend {
	case config.BackendFile:
		kv, err := store.NewFileKV(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
		}
		return store.New(kv, store.DefaultNamespace(), log), func() {}
	case config.BackendGCS:
		var opts []option.ClientOption
		if cfg.GCSEndpoint != "" {
			opts = append(opts, option.WithEndpoint(cfg.GCSEndpoint))
		}
		kv, err := store.NewGCSKV(ctx, cfg.GCSBucket, cfg.GCSPrefix, opts...)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.GCSBucket).Msg("Failed to create GCS store")
		}
		return store.New(kv, store.DefaultNamespace(), log), func() { kv.Close() }
	default:
		return store.New(store.NewMemoryKV(), store.DefaultNamespace(), log), func() {}
	}
}

func buildDigest(ctx context.Context, st *store.Store, log zerolog.Logger) digest.Digest {
	txs := records.NewTransactionService(ctx, st, log)
	budgets := records.NewBudgetService(ctx, st, log)
	goals := records.NewGoalService(ctx, st, log)
	return digest.Build(txs.List(ctx), budgets.List(ctx), goals.List(ctx))
}

func runDigest(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	st, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	fmt.Println(digest.FormatForPrompt(buildDigest(ctx, st, log)))
}

func runAsk(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	message := fs.String("message", "", "Question for the assistant")
	fs.Parse(os.Args[2:])

	if *message == "" {
		log.Fatal().Msg("Error: --message is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	st, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	gateway := assistant.NewGateway(
		assistant.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel), log)

	d := buildDigest(ctx, st, log)
	fmt.Println(gateway.Ask(ctx, *message, digest.FormatForPrompt(d)))
}

func runSummary(cfg *config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	st, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	txService := records.NewTransactionService(ctx, st, log)
	budgetService := records.NewBudgetService(ctx, st, log)
	goalService := records.NewGoalService(ctx, st, log)

	totals := report.ComputeTotals(txService.List(ctx))
	fmt.Println("=== Totals ===")
	fmt.Printf("Income:    $%s\n", totals.Income)
	fmt.Printf("Expenses:  $%s\n", totals.Expenses)
	fmt.Printf("Net Worth: $%s\n", totals.NetWorth)

	fmt.Println("\n=== Budgets ===")
	for _, b := range budgetService.List(ctx) {
		p := report.ComputeBudgetProgress(b)
		status := ""
		if p.OverBudget {
			status = " OVER BUDGET"
		}
		fmt.Printf("%-15s $%s of $%s (%d%%)%s\n", b.Name+":", b.Spent, b.Amount, p.Percentage, status)
	}

	fmt.Println("\n=== Goals ===")
	for _, g := range goalService.List(ctx) {
		p := report.ComputeGoalProgress(g)
		status := ""
		if p.Completed {
			status = " COMPLETED"
		}
		fmt.Printf("%-15s $%s of $%s (%d%%) due %s%s\n", g.Name+":", g.Saved, g.Target, p.Percentage, g.Due, status)
	}
}
