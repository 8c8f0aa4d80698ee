package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/classtrack/attendance-backend/internal/config"
	"github.com/classtrack/attendance-backend/internal/handler"
	"github.com/classtrack/attendance-backend/internal/middleware"
	"github.com/classtrack/attendance-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	Report     *handler.ReportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── Students ──────────────────────────────────────────────────────
	students := api.Group("/students")
	{
		students.POST("", handlers.Student.CreateStudent)
		students.GET("", handlers.Student.ListStudents)
		students.GET("/search", handlers.Student.SearchStudents)
		students.POST("/search/advanced", handlers.Student.AdvancedSearch)
		students.PATCH("/bulk/course", handlers.Student.BulkUpdateCourse)
		students.DELETE("/bulk", handlers.Student.BulkDelete)
		students.GET("/:id", handlers.Student.GetStudent)
		students.PUT("/:id", handlers.Student.UpdateStudent)
		students.DELETE("/:id", handlers.Student.DeleteStudent)
	}

	// ─── Attendance ────────────────────────────────────────────────────
	attendance := api.Group("/attendance")
	{
		attendance.POST("", handlers.Attendance.RecordAttendance)
		attendance.POST("/batch", handlers.Attendance.RecordBatch)
		attendance.GET("/range", handlers.Attendance.ByDateRange)
		attendance.GET("/date/:date", handlers.Attendance.ByDate)
		attendance.GET("/student/:studentId", handlers.Attendance.ByStudent)
		attendance.GET("/student/:studentId/summary", handlers.Attendance.StudentSummary)
		attendance.GET("/:id", handlers.Attendance.GetRecord)
		attendance.DELETE("/:id", handlers.Attendance.DeleteRecord)
	}

	// ─── Reports ───────────────────────────────────────────────────────
	// Export writes files; keep a modest per-IP rate limit on it.
	exportLimiter := middleware.NewRateLimiter(10, time.Minute)

	reports := api.Group("/reports")
	{
		reports.GET("/student/:id", handlers.Report.StudentReport)
		reports.GET("/daily/:date", handlers.Report.DailyReport)
		reports.GET("/course/:course", handlers.Report.CourseReport)
		reports.GET("/monthly/:year/:month", middleware.CacheControl(300), handlers.Report.MonthlyReport)
		reports.POST("/export", exportLimiter.Middleware(), handlers.Report.ExportReport)
	}

	return router
}
