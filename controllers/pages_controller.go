package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-backend/config"
	"clinic-backend/services"
)

// PagesController renders the static informational pages.
type PagesController struct {
	Staff *services.StaffService
	Cfg   config.SiteConfig
}

func NewPagesController(staff *services.StaffService, cfg config.SiteConfig) *PagesController {
	return &PagesController{Staff: staff, Cfg: cfg}
}

func (ctl *PagesController) page(template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, template, gin.H{"SiteName": ctl.Cfg.SiteName})
	}
}

func (ctl *PagesController) Home(c *gin.Context)         { ctl.page("home.html")(c) }
func (ctl *PagesController) Thanks(c *gin.Context)       { ctl.page("thanks.html")(c) }
func (ctl *PagesController) Contact(c *gin.Context)      { ctl.page("contact.html")(c) }
func (ctl *PagesController) Privacy(c *gin.Context)      { ctl.page("privacy.html")(c) }
func (ctl *PagesController) CookiePolicy(c *gin.Context) { ctl.page("cookie_policy.html")(c) }
func (ctl *PagesController) Terms(c *gin.Context)        { ctl.page("terms.html")(c) }
func (ctl *PagesController) Pricing(c *gin.Context)      { ctl.page("pricing.html")(c) }

// AboutUs also lists the active team members in display order.
func (ctl *PagesController) AboutUs(c *gin.Context) {
	members, err := ctl.Staff.ListActive()
	if err != nil {
		log.Printf("warning: failed to load staff members: %v", err)
	}
	c.HTML(http.StatusOK, "about_us.html", gin.H{
		"SiteName": ctl.Cfg.SiteName,
		"Staff":    members,
	})
}

// Health is a pure liveness probe: 200 "ok" regardless of database state.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
