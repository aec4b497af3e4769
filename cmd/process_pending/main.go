// process_pending runs the pipeline for documents left in pending status,
// for example uploads registered without immediate processing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studion/internal/adapter/llm"
	"studion/internal/config"
	"studion/internal/database"
	"studion/internal/extractor"
	"studion/internal/logger"
	"studion/internal/parser"
	"studion/internal/repository"
	"studion/internal/service"

	"go.uber.org/zap"
)

func main() {
	limit := flag.Int("limit", 50, "maximum number of documents to process")
	workers := flag.Int("workers", 0, "parallel pipeline runs (0 uses generation.workers)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if *workers <= 0 {
		*workers = cfg.Generation.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN(), database.DefaultPoolConfig, l)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ai, aiCloser, err := llm.NewFromConfig(ctx, cfg.LLM, l)
	if err != nil {
		l.Fatal("Failed to create LLM client", zap.Error(err))
	}
	defer aiCloser.Close()

	documents := service.NewDocumentService(service.DocumentServiceDeps{
		Documents: repository.NewDocumentRepository(db),
		Quizzes:   repository.NewQuizRepository(db),
		Tx:        repository.NewTransactionManagerAdapter(db, l),
		Extractor: extractor.NewPlainTextExtractor(cfg.Storage.Root),
		AI:        ai,
		Parser:    parser.New(l),
		Config:    cfg,
		Logger:    l,
	})

	n, err := documents.ProcessPending(ctx, *limit, *workers)
	if err != nil {
		l.Error("Pending sweep finished with errors", zap.Int("processed", n), zap.Error(err))
		os.Exit(1)
	}
	l.Info("Pending sweep finished", zap.Int("processed", n))
}
