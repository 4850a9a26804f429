package handlers

import (
	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	studentHandler    *StudentHandler
	curriculumHandler *CurriculumHandler
	gradeHandler      *GradeHandler
	reportHandler     *ReportHandler
	promotionHandler  *PromotionHandler
	exportHandler     *ExportHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		studentHandler:    NewStudentHandler(serviceManager.Roster(), validator, logger),
		curriculumHandler: NewCurriculumHandler(serviceManager.Curriculum(), validator, logger),
		gradeHandler:      NewGradeHandler(serviceManager.Grades(), validator, logger),
		reportHandler:     NewReportHandler(serviceManager.Reports(), logger),
		promotionHandler:  NewPromotionHandler(serviceManager.Promotion(), logger),
		exportHandler:     NewExportHandler(serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "gradebook-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/academic-years", hm.reportHandler.ListAcademicYears)

		// Student routes
		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.AddStudent)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.DELETE("/:id", hm.studentHandler.RemoveStudent)
			students.PUT("/:id/retention", hm.studentHandler.SetRetention)
			students.PUT("/:id/transfer", hm.studentHandler.SetTransfer)
			students.GET("/:id/grades", hm.gradeHandler.GetStudentGrades)
			students.GET("/:id/report", hm.reportHandler.GetReportCard)
		}

		// Classroom routes
		classes := v1.Group("/classes/:grade/:room")
		{
			classes.GET("/students", hm.studentHandler.ListClass)
			classes.PUT("/grades", hm.gradeHandler.SaveClassGrades)
			classes.GET("/grades/export", hm.exportHandler.ExportClassGrades)
		}

		// Curriculum routes
		curriculum := v1.Group("/curriculum")
		{
			curriculum.GET("/:grade", hm.curriculumHandler.GetCurriculum)
			curriculum.PUT("/:grade/subjects", hm.curriculumHandler.UpsertSubject)
			curriculum.DELETE("/:grade/subjects", hm.curriculumHandler.DeleteSubject)
		}

		// Promotion route
		v1.POST("/promotions", hm.promotionHandler.RunPromotion)
	}
}
