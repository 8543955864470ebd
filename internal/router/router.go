package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/escola-dev/escola-api/internal/handler"
	"github.com/escola-dev/escola-api/internal/middleware"
	"github.com/escola-dev/escola-api/internal/service"
	"github.com/escola-dev/escola-api/pkg/config"
	"github.com/escola-dev/escola-api/pkg/logger"
	corsmiddleware "github.com/escola-dev/escola-api/pkg/middleware/cors"
	reqidmiddleware "github.com/escola-dev/escola-api/pkg/middleware/requestid"
)

// Dependencies bundles everything route registration needs.
type Dependencies struct {
	Config  *config.Config
	Logger  *zap.Logger
	DB      *sqlx.DB
	Metrics *service.MetricsService

	Auth        *service.AuthService
	Subjects    *service.SubjectService
	Areas       *service.SubjectAreaService
	Groups      *service.ClassGroupService
	Students    *service.StudentService
	Grades      *service.GradeService
	Attendance  *service.AttendanceService
	Events      *service.EventService
	LessonPlans *service.LessonPlanService
	Reports     *service.ReportService
}

// New builds the gin engine with all middleware and routes registered.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	api := r.Group(deps.Config.APIPrefix)
	registerRoutes(api, deps)

	return r
}

func registerRoutes(api *gin.RouterGroup, deps Dependencies) {
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(deps.Auth))

	coordinator := middleware.RequireCoordinatorTier()
	teacher := middleware.RequireTeacher()

	subjects := handler.NewSubjectHandler(deps.Subjects)
	protected.GET("/subjects", subjects.List)
	protected.GET("/subjects/:id", subjects.Get)
	protected.POST("/subjects", coordinator, subjects.Create)
	protected.PUT("/subjects/:id", coordinator, subjects.Update)
	protected.DELETE("/subjects/:id", coordinator, subjects.Delete)

	areas := handler.NewSubjectAreaHandler(deps.Areas)
	protected.GET("/subject-areas", areas.List)
	protected.GET("/subject-areas/:id", areas.Get)
	protected.POST("/subject-areas", coordinator, areas.Create)
	protected.PUT("/subject-areas/:id", coordinator, areas.Update)
	protected.DELETE("/subject-areas/:id", coordinator, areas.Delete)

	groups := handler.NewClassGroupHandler(deps.Groups)
	protected.GET("/class-groups", groups.List)
	protected.GET("/class-groups/:id", groups.Get)
	protected.GET("/class-groups/:id/students", coordinator, groups.Students)
	protected.POST("/class-groups", coordinator, groups.Create)
	protected.PUT("/class-groups/:id", coordinator, groups.Update)
	protected.DELETE("/class-groups/:id", coordinator, groups.Delete)

	students := handler.NewStudentHandler(deps.Students)
	protected.GET("/students", students.List)
	protected.GET("/students/:id", students.Get)
	protected.POST("/students", coordinator, students.Create)
	protected.PUT("/students/:id", coordinator, students.Update)
	protected.DELETE("/students/:id", coordinator, students.Delete)

	grades := handler.NewGradeHandler(deps.Grades)
	protected.GET("/grades", grades.List)
	protected.POST("/grades", teacher, grades.Create)
	protected.PUT("/grades/:id", teacher, grades.Update)
	protected.DELETE("/grades/:id", teacher, grades.Delete)
	protected.POST("/grades/bulk", teacher, grades.Bulk)

	attendance := handler.NewAttendanceHandler(deps.Attendance)
	protected.GET("/absences", attendance.List)
	protected.POST("/absences", teacher, attendance.Create)
	protected.PUT("/absences/:id", teacher, attendance.Update)
	protected.DELETE("/absences/:id", teacher, attendance.Delete)

	events := handler.NewEventHandler(deps.Events)
	protected.GET("/academic-events", events.Calendar)
	protected.GET("/academic-events/:id", events.Get)
	protected.POST("/academic-events", coordinator, events.Create)
	protected.PUT("/academic-events/:id", coordinator, events.Update)
	protected.DELETE("/academic-events/:id", coordinator, events.Delete)

	plans := handler.NewLessonPlanHandler(deps.LessonPlans)
	protected.GET("/lesson-plans/mine", teacher, plans.Mine)
	protected.POST("/lesson-plans", teacher, plans.Create)

	reports := handler.NewReportHandler(deps.Reports)
	protected.GET("/reports/students/:id", reports.StudentPerformance)
	protected.GET("/reports/absences", reports.AbsenceSummary)
	protected.GET("/reports/management", reports.Management)
}
