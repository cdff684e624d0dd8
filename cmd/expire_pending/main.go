package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/VetBookingService/internal/config"
	appointmentRepo "github.com/m04kA/VetBookingService/internal/infra/storage/appointment"
	appointmentsService "github.com/m04kA/VetBookingService/internal/service/appointments"
	"github.com/m04kA/VetBookingService/pkg/logger"
)

// Разовый запуск: отменяет неоплаченные записи старше pending_expiry.ttl_minutes
// и освобождает их слоты. Расписание запуска задает оператор (cron, k8s CronJob)
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if !cfg.PendingExpiry.Enabled {
		log.Info("Pending expiry is disabled, nothing to do")
		return
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	svc := appointmentsService.NewService(appointmentRepo.NewRepository(db), log)

	cancelled, err := svc.ExpireStalePending(ctx, cfg.PendingExpiry.TTL(), time.Now())
	if err != nil {
		log.Fatal("Failed to expire pending appointments: %v", err)
	}

	log.Info("Expired %d pending appointments older than %s", cancelled, cfg.PendingExpiry.TTL())
}
