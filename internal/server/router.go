package server

import (
	"project-records/internal/config"
	"project-records/internal/handlers"
	"project-records/internal/metrics"
	"project-records/internal/middleware"
	"project-records/internal/models"
	"project-records/internal/services"
	"project-records/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const Version = "1.0.0"

// NewHandlers собирает сервисный слой поверх одной базы
func NewHandlers(db *gorm.DB, rec metrics.Recorder) *handlers.Handlers {
	uow := store.NewUnitOfWork(db)
	repos := services.NewRepos()

	return &handlers.Handlers{
		DB:        db,
		Projects:  services.NewProjectService(uow, repos, rec),
		Items:     services.NewServiceItems(uow, repos, rec),
		Employees: services.NewEmployeeService(uow, repos, rec),
		Customers: services.NewCustomerService(uow, repos, rec),
		Version:   Version,
	}
}

func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	prom := metrics.NewPrometheus()
	h := NewHandlers(db, prom)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(prom.Middleware())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AddAllowHeaders(middleware.RequestIDHeader)
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		// с AllowCredentials "*" запрещён, отражаем Origin запроса
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	sessStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("records_session", sessStore))
	r.Use(middleware.InjectUser(db))

	// HEALTHCHECK и метрики
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(prom.Handler()))

	api := r.Group("/api")

	// AUTH
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	auth := api.Group("/")
	// изменения: admin и manager, чтение: все роли
	write := []gin.HandlerFunc{}
	if cfg.AuthRequired {
		auth.Use(middleware.RequireAuth())
		write = append(write, middleware.RequireRole(models.RoleAdmin, models.RoleManager))
	}
	withWrite := func(hf gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, write...), hf)
	}

	auth.GET("/auth/me", h.Me)

	// ПРОЕКТЫ
	auth.GET("/projects", h.ListProjects)
	auth.GET("/projects/:id", h.GetProject)
	auth.POST("/projects", withWrite(h.CreateProject)...)
	auth.PUT("/projects/:id", withWrite(h.UpdateProject)...)
	auth.DELETE("/projects/:id", withWrite(h.DeleteProject)...)

	// УСЛУГИ
	auth.GET("/projects/:id/services", h.ListProjectServices)
	auth.POST("/projects/:id/services", withWrite(h.CreateProjectService)...)
	auth.GET("/services", h.ListServices)
	auth.GET("/services/:id", h.GetService)
	auth.PUT("/services/:id", withWrite(h.UpdateService)...)
	auth.DELETE("/services/:id", withWrite(h.DeleteService)...)

	// СОТРУДНИКИ
	auth.GET("/employees", h.ListEmployees)
	auth.GET("/employees/:id", h.GetEmployee)
	auth.POST("/employees", withWrite(h.CreateEmployee)...)
	auth.PUT("/employees/:id", withWrite(h.UpdateEmployee)...)
	auth.DELETE("/employees/:id", withWrite(h.DeleteEmployee)...)

	// ЗАКАЗЧИКИ
	auth.GET("/customers", h.ListCustomers)
	auth.GET("/customers/:id", h.GetCustomer)
	auth.GET("/customers/:id/contacts", h.ListCustomerContacts)

	return r
}
