package main

import (
	"fmt"
	"net/http"

	"github.com/workpoint-hq/attendance-console/internal/config"
	"github.com/workpoint-hq/attendance-console/internal/domain/attendance"
	appHTTP "github.com/workpoint-hq/attendance-console/internal/handler/http"
	"github.com/workpoint-hq/attendance-console/internal/pkg/hrapi"
	attendanceService "github.com/workpoint-hq/attendance-console/internal/service/attendance"
	leaveService "github.com/workpoint-hq/attendance-console/internal/service/leave"
	reportService "github.com/workpoint-hq/attendance-console/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	client := hrapi.NewClient(cfg.HRAPI.BaseURL, cfg.HRAPI.Token, cfg.HRAPI.Timeout)

	durationPolicy := attendance.NewDurationPolicy(cfg.OffStatusSet())
	latenessPolicy := attendance.LatenessPolicy{
		OfficialStart: cfg.OfficialStartTime(),
		GraceMinutes:  cfg.Policy.GraceMinutes,
	}

	consoleService := attendanceService.NewConsoleService(client, durationPolicy, latenessPolicy)
	reportSvc := reportService.NewReportService(client)
	leaveSvc := leaveService.NewLeaveService(client)

	attendanceHandler := appHTTP.NewAttendanceHandler(consoleService)
	employeeHandler := appHTTP.NewEmployeeHandler(client)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		attendanceHandler,
		employeeHandler,
		reportHandler,
		leaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
