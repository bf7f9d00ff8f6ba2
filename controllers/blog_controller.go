package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-backend/config"
	"clinic-backend/services"
	"clinic-backend/utils"
)

const (
	relatedPostLimit = 3
	recentPostLimit  = 5
)

type BlogController struct {
	Service *services.BlogService
	Cfg     config.SiteConfig
}

func NewBlogController(service *services.BlogService, cfg config.SiteConfig) *BlogController {
	return &BlogController{Service: service, Cfg: cfg}
}

// List handles GET /blog with optional category, q and page parameters.
func (ctl *BlogController) List(c *gin.Context) {
	filter := services.BlogFilter{
		Query: c.Query("q"),
		Page:  pageParam(c),
	}

	var selectedCategory interface{}
	if slug := c.Query("category"); slug != "" {
		category, err := ctl.Service.CategoryBySlug(slug)
		if err != nil {
			ctl.notFound(c, err)
			return
		}
		filter.CategoryID = &category.ID
		selectedCategory = category
	}

	page, err := ctl.Service.ListPublished(filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	categories, err := ctl.Service.Categories()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}

	c.HTML(http.StatusOK, "blog.html", gin.H{
		"SiteName":         ctl.Cfg.SiteName,
		"Page":             page,
		"Categories":       categories,
		"SelectedCategory": selectedCategory,
		"SearchQuery":      c.Query("q"),
	})
}

// Detail handles GET /blog/:slug. The view-count bump is a side effect of
// the read and must never take the page down with it.
func (ctl *BlogController) Detail(c *gin.Context) {
	post, err := ctl.Service.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		ctl.notFound(c, err)
		return
	}

	if err := ctl.Service.IncrementViews(post.ID); err != nil {
		log.Printf("warning: failed to bump view count for post %d: %v", post.ID, err)
	}

	related, err := ctl.Service.RelatedPosts(post, relatedPostLimit)
	if err != nil {
		log.Printf("warning: failed to load related posts for %d: %v", post.ID, err)
	}
	recent, err := ctl.Service.RecentPosts(post.ID, recentPostLimit)
	if err != nil {
		log.Printf("warning: failed to load recent posts: %v", err)
	}

	c.HTML(http.StatusOK, "blog_post_detail.html", gin.H{
		"SiteName":    ctl.Cfg.SiteName,
		"Post":        post,
		"SafeContent": utils.SanitizeHTML(post.Content),
		"Related":     related,
		"Recent":      recent,
	})
}

// Category handles GET /blog/category/:slug.
func (ctl *BlogController) Category(c *gin.Context) {
	category, err := ctl.Service.CategoryBySlug(c.Param("slug"))
	if err != nil {
		ctl.notFound(c, err)
		return
	}

	page, err := ctl.Service.ListPublished(services.BlogFilter{
		CategoryID: &category.ID,
		Page:       pageParam(c),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}

	c.HTML(http.StatusOK, "blog_category.html", gin.H{
		"SiteName": ctl.Cfg.SiteName,
		"Category": category,
		"Page":     page,
	})
}

func (ctl *BlogController) notFound(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "something went wrong")
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
