package compro

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sentinel errors shared by every Store implementation. Handlers translate
// them into HTTP statuses at the route boundary.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateSlug is returned when a write would violate a unique slug
	// index, whether detected by a pre-check or by the index itself.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrSingletonExists is returned when creating a singleton document
	// (footer, about) that already exists.
	ErrSingletonExists = errors.New("singleton document already exists")

	// ErrDuplicateEmail is returned when creating a user with a taken email.
	ErrDuplicateEmail = errors.New("email already in use")
)

// PageFilter narrows a pages listing. Zero-value fields are ignored; set
// fields combine with logical AND.
type PageFilter struct {
	PageType       string
	Status         string
	ShowInMainMenu bool // only filters when true
	Slug           string
}

// ServiceFilter narrows a services listing. Status is always applied (the
// handler defaults it to "active"); Featured only filters when true.
type ServiceFilter struct {
	Status   string
	Featured bool
	Limit    int
}

// PortfolioUpdate carries a partial update. Nil fields are left untouched.
type PortfolioUpdate struct {
	Title         *string              `json:"title"`
	Slug          *string              `json:"slug"`
	Description   *string              `json:"description"`
	Client        *string              `json:"client"`
	Category      *string              `json:"category"`
	Technologies  *[]Technology        `json:"technologies"`
	Featured      *bool                `json:"featured"`
	Status        *string              `json:"status"`
	CompletedAt   *string              `json:"completedAt"`
	ProjectURL    *string              `json:"projectUrl"`
	Challenge     *string              `json:"challenge"`
	Solution      *string              `json:"solution"`
	Results       *[]Result            `json:"results"`
	FeaturedImage **primitive.ObjectID `json:"featuredImage"`
	Gallery       *[]GalleryItem       `json:"gallery"`
	Testimonial   *Testimonial         `json:"testimonial"`
	Metrics       *ProjectMetrics      `json:"metrics"`
}

// Store is the content data access layer. The MongoDB implementation backs
// production; the in-memory implementation backs tests and database-less
// development. All methods are safe for concurrent use.
type Store interface {
	Close(ctx context.Context) error

	// Pages. ListPages returns the matching documents and the total match
	// count before the limit was applied.
	ListPages(ctx context.Context, f PageFilter, limit int) ([]Page, int, error)
	CreatePage(ctx context.Context, p *Page) error

	// Portfolio.
	ListPortfolio(ctx context.Context, limit int) ([]PortfolioItem, int, error)
	GetPortfolioByID(ctx context.Context, id primitive.ObjectID) (*PortfolioItem, error)
	GetPortfolioBySlug(ctx context.Context, slug string) (*PortfolioItem, error)
	// PortfolioSlugInUse reports whether slug belongs to a document other
	// than exclude (pass primitive.NilObjectID to exclude nothing).
	PortfolioSlugInUse(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error)
	CreatePortfolio(ctx context.Context, p *PortfolioItem) error
	UpdatePortfolio(ctx context.Context, id primitive.ObjectID, u *PortfolioUpdate) (*PortfolioItem, error)
	DeletePortfolio(ctx context.Context, id primitive.ObjectID) error

	// Services.
	ListServices(ctx context.Context, f ServiceFilter) ([]Service, error)
	CreateService(ctx context.Context, s *Service) error

	// Singletons.
	GetAbout(ctx context.Context) (*About, error)
	UpsertAbout(ctx context.Context, a *About) error
	GetFooter(ctx context.Context) (*Footer, error)
	CreateFooter(ctx context.Context, f *Footer) error
	UpsertFooter(ctx context.Context, f *Footer) error

	// Media.
	ListMedia(ctx context.Context) ([]Media, error)
	GetMedia(ctx context.Context, id primitive.ObjectID) (*Media, error)
	CreateMedia(ctx context.Context, m *Media) error
	DeleteMedia(ctx context.Context, id primitive.ObjectID) error

	// Users.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
}

// touch stamps created/updated times on a new document.
func touch(created *time.Time, updated *time.Time) {
	now := time.Now().UTC()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}
