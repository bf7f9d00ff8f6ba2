package services

import (
	"strings"

	"gorm.io/gorm"

	"clinic-backend/models"
)

// BlogPageSize is the fixed public listing page size.
const BlogPageSize = 6

// BlogService serves the public blog queries and the console write paths.
type BlogService struct {
	DB *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{DB: db}
}

// BlogFilter selects published posts for the listing.
type BlogFilter struct {
	CategoryID *uint
	Query      string
	Page       int
}

// BlogPage is one page of the listing plus pagination metadata.
type BlogPage struct {
	Posts      []models.BlogPost
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

func (p *BlogPage) HasPrev() bool { return p.Page > 1 }
func (p *BlogPage) HasNext() bool { return p.Page < p.TotalPages }
func (p *BlogPage) PrevPage() int { return p.Page - 1 }
func (p *BlogPage) NextPage() int { return p.Page + 1 }

func (s *BlogService) publishedScope() *gorm.DB {
	return s.DB.Model(&models.BlogPost{}).Where("status = ?", models.PostStatusPublished)
}

// ListPublished returns one page of published posts, newest published
// first, optionally narrowed by category and a case-insensitive substring
// query across title, excerpt, content and keywords.
func (s *BlogService) ListPublished(f BlogFilter) (*BlogPage, error) {
	q := s.publishedScope()

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if search := strings.TrimSpace(f.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(content) LIKE ? OR LOWER(meta_keywords) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	totalPages := int((total + BlogPageSize - 1) / BlogPageSize)
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	var posts []models.BlogPost
	err := q.
		Preload("Category").
		Order("published_at DESC, created_at DESC").
		Offset((page - 1) * BlogPageSize).
		Limit(BlogPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &BlogPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   BlogPageSize,
		TotalPages: totalPages,
	}, nil
}

// GetPublishedBySlug fetches one published post. Draft posts behave as if
// they do not exist.
func (s *BlogService) GetPublishedBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.DB.
		Preload("Category").
		Where("slug = ? AND status = ?", slug, models.PostStatusPublished).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// IncrementViews bumps the view counter with a single UPDATE expression so
// concurrent detail-page hits never lose an increment.
func (s *BlogService) IncrementViews(id uint) error {
	return s.DB.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// RelatedPosts returns up to limit published posts from the same category,
// excluding the post itself. Posts without a category have no related set.
func (s *BlogService) RelatedPosts(post *models.BlogPost, limit int) ([]models.BlogPost, error) {
	if post.CategoryID == nil {
		return nil, nil
	}
	var posts []models.BlogPost
	err := s.publishedScope().
		Where("category_id = ? AND id <> ?", *post.CategoryID, post.ID).
		Order("published_at DESC, created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// RecentPosts returns up to limit recent published posts excluding one.
func (s *BlogService) RecentPosts(excludeID uint, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := s.publishedScope().
		Where("id <> ?", excludeID).
		Order("published_at DESC, created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Categories lists every category alphabetically for the sidebar.
func (s *BlogService) Categories() ([]models.BlogCategory, error) {
	var categories []models.BlogCategory
	err := s.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *BlogService) CategoryBySlug(slug string) (*models.BlogCategory, error) {
	var category models.BlogCategory
	if err := s.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ---- console write paths ----

func (s *BlogService) CreatePost(post *models.BlogPost) error {
	return s.DB.Create(post).Error
}

func (s *BlogService) GetPostByID(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.DB.Preload("Category").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SavePost persists an edited post through Save so the derived-field hook
// runs (slug, first-publish timestamp, meta description).
func (s *BlogService) SavePost(post *models.BlogPost) error {
	return s.DB.Save(post).Error
}

func (s *BlogService) DeletePost(id uint) error {
	return s.DB.Delete(&models.BlogPost{}, id).Error
}

// SetPostStatus publishes or unpublishes a post. The first transition to
// published stamps PublishedAt; unpublishing leaves it in place.
func (s *BlogService) SetPostStatus(id uint, status string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.DB.First(&post, id).Error; err != nil {
		return nil, err
	}
	post.Status = status
	if err := s.DB.Save(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListAllPosts returns every post for the console, drafts included.
func (s *BlogService) ListAllPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := s.DB.Preload("Category").
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *BlogService) CreateCategory(category *models.BlogCategory) error {
	return s.DB.Create(category).Error
}

// DeleteCategory removes a category and detaches its posts; posts are
// never cascaded away with the category.
func (s *BlogService) DeleteCategory(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BlogPost{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogCategory{}, id).Error
	})
}
