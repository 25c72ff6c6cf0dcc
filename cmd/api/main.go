package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/config"
	appHTTP "github.com/scanpoint-hq/scanpoint-backend-go/internal/handler/http"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/cron"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/database"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/jwt"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/repository/postgresql"
	attendanceService "github.com/scanpoint-hq/scanpoint-backend-go/internal/service/attendance"
	serviceAuth "github.com/scanpoint-hq/scanpoint-backend-go/internal/service/auth"
	cooldownService "github.com/scanpoint-hq/scanpoint-backend-go/internal/service/cooldown"
	gatepassService "github.com/scanpoint-hq/scanpoint-backend-go/internal/service/gatepass"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	deviceRepo := postgresql.NewDeviceRepository(db)
	rosterRepo := postgresql.NewRosterRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	gatePassRepo := postgresql.NewGatePassRepository(db)
	cooldownStore := postgresql.NewCooldownStore(db)

	clk := clock.System()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	cooldownManager := cooldownService.NewManager(
		cooldownStore,
		clk,
		time.Duration(cfg.Attendance.FirstCooldownMinutes)*time.Minute,
		time.Duration(cfg.Attendance.SecondCooldownMinutes)*time.Minute,
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cooldownManager.Run(ctx)

	guard := attendanceService.NewDuplicateActionGuard(cfg.Attendance.DuplicateSpacing)
	sessionValidator := attendanceService.NewSessionValidator(
		time.Duration(cfg.Attendance.MinSessionMinutes)*time.Minute,
		time.Duration(cfg.Attendance.MinBreakMinutes)*time.Minute,
	)

	authService := serviceAuth.NewAuthService(deviceRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		postgresql.NewTxManager(db),
		attendanceRepo,
		rosterRepo,
		cooldownManager,
		guard,
		sessionValidator,
		clk,
	)
	codeService := gatepassService.NewCodeService(clk)
	gatePassSvc := gatepassService.NewGatePassService(gatePassRepo, codeService, clk)

	scheduler := cron.NewScheduler()
	gatePassJobs := cron.NewGatePassJobs(gatePassRepo, clk)
	gatePassJobs.RegisterJobs(scheduler, cfg.GatePass.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cooldownManager)
	gatePassHandler := appHTTP.NewGatePassHandler(gatePassSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		attendanceHandler,
		gatePassHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
