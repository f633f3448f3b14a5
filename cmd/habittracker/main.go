package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/config"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}
	cal := calendar.New(loc, cfg.WeekStart)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	rolloverSvc := service.NewRolloverService(habitRepo, completionRepo, cal)

	scheduler := service.NewSchedulerService(loc)
	if cfg.RolloverEnabled {
		if _, err := scheduler.ScheduleDaily(cfg.RolloverAt, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := rolloverSvc.RollOver(jobCtx, time.Now()); err != nil {
				log.Printf("rollover: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule rollover: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Printf("Habit tracker started (timezone %s, rollover %s).", cfg.Timezone, cfg.RolloverAt)
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
