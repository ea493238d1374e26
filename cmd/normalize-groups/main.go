package main

import (
	"context"
	"fmt"

	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/database"
	"github.com/thebiblebus/biblebus-backend/internal/events"
	"github.com/thebiblebus/biblebus-backend/internal/logger"
	"github.com/thebiblebus/biblebus-backend/internal/repository"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

// Rewrites every group's start date, derived dates and name so they conform
// to the quarterly calendar rules. One-off repair for hand-edited rows.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	epoch, err := service.ParseDate(cfg.GroupEpoch)
	if err != nil {
		log.Fatal().Err(err).Str("epoch", cfg.GroupEpoch).Msg("Invalid GROUP_EPOCH")
	}

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	groupRepo := repository.NewGroupRepository(pool)
	groupService := service.NewGroupService(groupRepo, events.NopPublisher{}, log, epoch)

	updated, err := groupService.NormalizeAllGroups(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Normalization failed")
	}

	fmt.Printf("Normalization complete: %d group(s) rewritten\n", updated)
}
