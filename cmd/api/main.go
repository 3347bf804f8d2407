package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/albastory/workforce-backend-go/internal/config"
	appHTTP "github.com/albastory/workforce-backend-go/internal/handler/http"
	"github.com/albastory/workforce-backend-go/internal/pkg/assistant"
	"github.com/albastory/workforce-backend-go/internal/pkg/database"
	"github.com/albastory/workforce-backend-go/internal/pkg/jwt"
	"github.com/albastory/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/albastory/workforce-backend-go/internal/service/attendance"
	authService "github.com/albastory/workforce-backend-go/internal/service/auth"
	availabilityService "github.com/albastory/workforce-backend-go/internal/service/availability"
	employeeService "github.com/albastory/workforce-backend-go/internal/service/employee"
	payrollService "github.com/albastory/workforce-backend-go/internal/service/payroll"
	scheduleService "github.com/albastory/workforce-backend-go/internal/service/schedule"
	workplaceService "github.com/albastory/workforce-backend-go/internal/service/workplace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	workplaceRepo := postgresql.NewWorkplaceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	availabilityRepo := postgresql.NewAvailabilityRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var planner assistant.Planner
	if cfg.OpenAI.APIKey != "" {
		planner = assistant.NewOpenAIPlanner(cfg.OpenAI.APIKey, cfg.OpenAI.Timeout)
	}

	authSvc := authService.NewAuthService(db, userRepo, jwtService)
	workplaceSvc := workplaceService.NewWorkplaceService(db, workplaceRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, workplaceRepo)
	availabilitySvc := availabilityService.NewAvailabilityService(db, availabilityRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, workplaceRepo)
	scheduleSvc := scheduleService.NewScheduleService(db, scheduleRepo, availabilityRepo, employeeRepo, workplaceRepo, planner)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, attendanceRepo, employeeRepo, workplaceRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	workplaceHandler := appHTTP.NewWorkplaceHandler(workplaceSvc, employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc, availabilitySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, workplaceHandler, attendanceHandler, scheduleHandler, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
