package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odontosys/clinic-api/internal/config"
	dbpkg "github.com/odontosys/clinic-api/internal/db"
	"github.com/odontosys/clinic-api/internal/reminder"
	"github.com/odontosys/clinic-api/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	redisClient := dbpkg.NewRedis(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auditDispatcher, notifications := routes.RegisterRoutes(r, db, redisClient, cfg)
	defer auditDispatcher.Close()

	// Lembretes: varredura periódica dos agendamentos próximos.
	reminders := reminder.NewService(
		db,
		notifications,
		reminder.NewSMSSender(cfg),
		cfg.ReminderWindowMinutes,
	)
	scheduler := reminders.StartScheduler()
	defer scheduler.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
