package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/escola-dev/escola-api/internal/repository"
	"github.com/escola-dev/escola-api/internal/router"
	"github.com/escola-dev/escola-api/internal/service"
	"github.com/escola-dev/escola-api/pkg/cache"
	"github.com/escola-dev/escola-api/pkg/config"
	"github.com/escola-dev/escola-api/pkg/database"
	"github.com/escola-dev/escola-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, report caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled && cacheRepo != nil)

	validate := validator.New()

	users := repository.NewUserRepository(db)
	subjects := repository.NewSubjectRepository(db)
	areas := repository.NewSubjectAreaRepository(db)
	groups := repository.NewClassGroupRepository(db)
	students := repository.NewStudentRepository(db)
	grades := repository.NewGradeRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	events := repository.NewEventRepository(db)
	plans := repository.NewLessonPlanRepository(db)
	reports := repository.NewReportRepository(db)

	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	deps := router.Dependencies{
		Config:      cfg,
		Logger:      logr,
		DB:          db,
		Metrics:     metrics,
		Auth:        authSvc,
		Subjects:    service.NewSubjectService(subjects, validate, logr),
		Areas:       service.NewSubjectAreaService(areas, validate, logr),
		Groups:      service.NewClassGroupService(groups, validate, logr),
		Students:    service.NewStudentService(students, validate, logr),
		Grades:      service.NewGradeService(grades, users, validate, logr),
		Attendance:  service.NewAttendanceService(attendance, users, validate, logr),
		Events:      service.NewEventService(events, validate, logr),
		LessonPlans: service.NewLessonPlanService(plans, subjects, users, validate, logr),
		Reports:     service.NewReportService(reports, attendance, students, groups, cacheSvc, logr),
	}

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
