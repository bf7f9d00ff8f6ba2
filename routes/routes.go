package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"clinic-backend/config"
	"clinic-backend/controllers"
	"clinic-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the public site, the consent endpoint and the staff
// console API.
func SetupRouter(
	cfg config.SiteConfig,
	rdb *redis.Client,
	pages *controllers.PagesController,
	appointments *controllers.AppointmentController,
	rights *controllers.RightsRequestController,
	blog *controllers.BlogController,
	consent *controllers.ConsentController,
	admin *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.DomainRedirect(cfg.CanonicalHost, cfg.RedirectHosts))

	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("clinic_session", store))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", controllers.Health)

	// Public site.
	r.GET("/", pages.Home)
	r.GET("/book", appointments.ShowForm)
	r.POST("/book", appointments.Book)
	r.GET("/thanks", pages.Thanks)
	r.GET("/contact", pages.Contact)
	r.GET("/privacy", pages.Privacy)
	r.GET("/cookie-policy", pages.CookiePolicy)
	r.GET("/terms", pages.Terms)
	r.GET("/about-us", pages.AboutUs)
	r.GET("/pricing", pages.Pricing)

	r.GET("/data-subject-rights", rights.ShowForm)
	r.POST("/data-subject-rights", rights.Submit)

	// Blog listings are cacheable when Redis is configured. The detail
	// route stays uncached: its handler bumps the view counter, and a
	// cached hit would skip that.
	blogGroup := r.Group("/blog")
	{
		pageCache := middleware.PageCache(rdb, cfg.CacheTTL)
		blogGroup.GET("", pageCache, blog.List)
		blogGroup.GET("/category/:slug", pageCache, blog.Category)
		blogGroup.GET("/:slug", blog.Detail)
	}

	api := r.Group("/api")
	{
		api.POST("/log-cookie-consent", consent.LogCookieConsent)

		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/login", admin.Login)

			protected := adminGroup.Group("", middleware.JWTAuth(cfg.JWTSecret))
			{
				protected.GET("/appointments", admin.ListAppointments)

				protected.GET("/rights-requests", admin.ListRightsRequests)
				protected.PATCH("/rights-requests/:id/status", admin.UpdateRightsRequestStatus)

				protected.GET("/posts", admin.ListPosts)
				protected.POST("/posts", admin.CreatePost)
				protected.PUT("/posts/:id", admin.UpdatePost)
				protected.DELETE("/posts/:id", admin.DeletePost)
				protected.POST("/posts/:id/publish", admin.PublishPost)
				protected.POST("/posts/:id/unpublish", admin.UnpublishPost)

				protected.GET("/categories", admin.ListCategories)
				protected.POST("/categories", admin.CreateCategory)
				protected.DELETE("/categories/:id", admin.DeleteCategory)

				protected.GET("/staff", admin.ListStaff)
				protected.POST("/staff", admin.CreateStaffMember)
				protected.PUT("/staff/:id", admin.UpdateStaffMember)
				protected.DELETE("/staff/:id", admin.DeleteStaffMember)

				// Audit rows: list only. No mutating routes exist.
				protected.GET("/cookie-consents", admin.ListCookieConsents)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 page not found")
	})

	return r
}
