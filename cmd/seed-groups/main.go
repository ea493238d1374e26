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

// Seeds the first reading group from GROUP_EPOCH when the groups table is
// empty, then advances statuses so the seeded group is immediately usable.
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

	created, err := groupService.CreateNextQuarterlyGroup(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed group")
	}
	if created == nil {
		fmt.Println("No group due yet; nothing seeded")
		return
	}

	counts, err := groupService.UpdateGroupStatuses(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to advance group statuses")
	}

	fmt.Printf("Seeded group %q (id=%d), statuses advanced: %d activated, %d closed, %d completed\n",
		created.Name, created.ID, counts.Activated, counts.Closed, counts.Completed)
}
