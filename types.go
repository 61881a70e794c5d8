package compro

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Page is a site page record: routing, SEO, and navigation metadata for the
// frontend. The slug is unique across all pages and derived from the title
// when absent.
type Page struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	PageType    string             `bson:"pageType" json:"pageType"`
	Status      string             `bson:"status" json:"status"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	SEO         PageSEO            `bson:"seo" json:"seo"`
	Navigation  PageNavigation     `bson:"navigation" json:"navigation"`
	Content     PageContent        `bson:"content" json:"content"`
	Analytics   PageAnalytics      `bson:"analytics" json:"analytics"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type PageSEO struct {
	MetaTitle       string              `bson:"metaTitle,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string              `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	Keywords        string              `bson:"keywords,omitempty" json:"keywords,omitempty"`
	OGImage         *primitive.ObjectID `bson:"ogImage,omitempty" json:"ogImage,omitempty"`
}

type PageNavigation struct {
	ShowInMainMenu bool   `bson:"showInMainMenu" json:"showInMainMenu"`
	ShowInFooter   bool   `bson:"showInFooter" json:"showInFooter"`
	MenuOrder      int    `bson:"menuOrder" json:"menuOrder"`
	MenuLabel      string `bson:"menuLabel,omitempty" json:"menuLabel,omitempty"`
}

type PageContent struct {
	HasHeroSection bool `bson:"hasHeroSection" json:"hasHeroSection"`
	HasContactForm bool `bson:"hasContactForm" json:"hasContactForm"`
	EnableComments bool `bson:"enableComments" json:"enableComments"`
}

type PageAnalytics struct {
	TrackPageViews  bool             `bson:"trackPageViews" json:"trackPageViews"`
	ConversionGoals []ConversionGoal `bson:"conversionGoals,omitempty" json:"conversionGoals,omitempty"`
}

type ConversionGoal struct {
	GoalName string `bson:"goalName" json:"goalName"`
	GoalType string `bson:"goalType" json:"goalType"`
}

// Page type and status values.
const (
	PageTypeHome      = "home"
	PageTypeAbout     = "about"
	PageTypeServices  = "services"
	PageTypePortfolio = "portfolio"
	PageTypeContact   = "contact"
	PageTypeCustom    = "custom"

	PageStatusPublished   = "published"
	PageStatusDraft       = "draft"
	PageStatusMaintenance = "maintenance"
	PageStatusComingSoon  = "coming-soon"
)

var pageTypes = []string{PageTypeHome, PageTypeAbout, PageTypeServices, PageTypePortfolio, PageTypeContact, PageTypeCustom}

var pageStatuses = []string{PageStatusPublished, PageStatusDraft, PageStatusMaintenance, PageStatusComingSoon}

var goalTypes = []string{"contact", "download", "newsletter", "service"}

// ValidPageType reports whether v is a known page type.
func ValidPageType(v string) bool { return contains(pageTypes, v) }

// ValidPageStatus reports whether v is a known page status.
func ValidPageStatus(v string) bool { return contains(pageStatuses, v) }

// ValidGoalType reports whether v is a known conversion goal type.
func ValidGoalType(v string) bool { return contains(goalTypes, v) }

// PortfolioItem is a project showcase entry.
type PortfolioItem struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string              `bson:"title" json:"title"`
	Slug          string              `bson:"slug" json:"slug"`
	Description   string              `bson:"description" json:"description"`
	Client        string              `bson:"client" json:"client"`
	Category      string              `bson:"category" json:"category"`
	Technologies  []Technology        `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Featured      bool                `bson:"featured" json:"featured"`
	Status        string              `bson:"status" json:"status"`
	CompletedAt   string              `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	ProjectURL    string              `bson:"projectUrl,omitempty" json:"projectUrl,omitempty"`
	Challenge     string              `bson:"challenge,omitempty" json:"challenge,omitempty"`
	Solution      string              `bson:"solution,omitempty" json:"solution,omitempty"`
	Results       []Result            `bson:"results,omitempty" json:"results,omitempty"`
	FeaturedImage *primitive.ObjectID `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	Gallery       []GalleryItem       `bson:"gallery,omitempty" json:"gallery,omitempty"`
	Testimonial   Testimonial         `bson:"testimonial" json:"testimonial"`
	Metrics       ProjectMetrics      `bson:"metrics" json:"metrics"`
	CreatedAt     time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Technology and Result wrap a single text value so the JSON shape matches
// the array-of-objects form the admin frontend submits.
type Technology struct {
	Technology string `bson:"technology" json:"technology"`
}

type Result struct {
	Result string `bson:"result" json:"result"`
}

type GalleryItem struct {
	Image   primitive.ObjectID `bson:"image" json:"image"`
	Caption string             `bson:"caption,omitempty" json:"caption,omitempty"`
}

type Testimonial struct {
	Quote    string `bson:"quote,omitempty" json:"quote,omitempty"`
	Author   string `bson:"author,omitempty" json:"author,omitempty"`
	Position string `bson:"position,omitempty" json:"position,omitempty"`
	Company  string `bson:"company,omitempty" json:"company,omitempty"`
}

type ProjectMetrics struct {
	Duration string `bson:"duration,omitempty" json:"duration,omitempty"`
	TeamSize int    `bson:"teamSize,omitempty" json:"teamSize,omitempty"`
	Budget   string `bson:"budget,omitempty" json:"budget,omitempty"`
}

// Portfolio status values.
const (
	PortfolioStatusCompleted  = "completed"
	PortfolioStatusInProgress = "in-progress"
	PortfolioStatusOnHold     = "on-hold"
	PortfolioStatusCancelled  = "cancelled"
)

var portfolioCategories = []string{"ai", "web", "mobile", "analytics", "cloud", "automation", "iot", "blockchain", "other"}

var portfolioStatuses = []string{PortfolioStatusCompleted, PortfolioStatusInProgress, PortfolioStatusOnHold, PortfolioStatusCancelled}

func ValidPortfolioCategory(v string) bool { return contains(portfolioCategories, v) }

func ValidPortfolioStatus(v string) bool { return contains(portfolioStatuses, v) }

// Service is a single service offering, ordered ascending by Order on the
// public services page.
type Service struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Icon         string              `bson:"icon,omitempty" json:"icon,omitempty"`
	Category     string              `bson:"category,omitempty" json:"category,omitempty"`
	Features     []Feature           `bson:"features,omitempty" json:"features,omitempty"`
	Benefits     []Benefit           `bson:"benefits,omitempty" json:"benefits,omitempty"`
	Technologies []Technology        `bson:"technologies,omitempty" json:"technologies,omitempty"`
	ServiceImage *primitive.ObjectID `bson:"serviceImage,omitempty" json:"serviceImage,omitempty"`
	Featured     bool                `bson:"featured" json:"featured"`
	Order        int                 `bson:"order" json:"order"`
	Status       string              `bson:"status" json:"status"`
	CreatedAt    time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type Feature struct {
	Feature string `bson:"feature" json:"feature"`
}

type Benefit struct {
	Benefit string `bson:"benefit" json:"benefit"`
}

const (
	ServiceStatusActive     = "active"
	ServiceStatusComingSoon = "coming-soon"
	ServiceStatusInactive   = "inactive"
)

var serviceCategories = []string{"ai", "automation", "edtech", "fintech", "software", "other"}

var serviceStatuses = []string{ServiceStatusActive, ServiceStatusComingSoon, ServiceStatusInactive}

func ValidServiceCategory(v string) bool { return contains(serviceCategories, v) }

func ValidServiceStatus(v string) bool { return contains(serviceStatuses, v) }

// About is the singleton about-page document.
type About struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title           string             `bson:"title" json:"title"`
	HeroTitle       string             `bson:"heroTitle" json:"heroTitle"`
	HeroDescription string             `bson:"heroDescription" json:"heroDescription"`
	OurStory        StorySection       `bson:"ourStory" json:"ourStory"`
	Values          []CompanyValue     `bson:"values,omitempty" json:"values,omitempty"`
	Timeline        []Milestone        `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Team            []TeamMember       `bson:"team,omitempty" json:"team,omitempty"`
	Statistics      Statistics         `bson:"statistics" json:"statistics"`
	CTA             CallToAction       `bson:"cta" json:"cta"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type StorySection struct {
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Content string `bson:"content,omitempty" json:"content,omitempty"`
}

type CompanyValue struct {
	Icon        string `bson:"icon" json:"icon"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

type Milestone struct {
	Year        string `bson:"year" json:"year"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

type TeamMember struct {
	Name     string              `bson:"name" json:"name"`
	Position string              `bson:"position" json:"position"`
	Bio      string              `bson:"bio,omitempty" json:"bio,omitempty"`
	Image    *primitive.ObjectID `bson:"image,omitempty" json:"image,omitempty"`
}

type Statistics struct {
	Title string `bson:"title,omitempty" json:"title,omitempty"`
	Stats []Stat `bson:"stats,omitempty" json:"stats,omitempty"`
}

type Stat struct {
	Number string `bson:"number" json:"number"`
	Label  string `bson:"label" json:"label"`
}

type CallToAction struct {
	Title               string `bson:"title,omitempty" json:"title,omitempty"`
	Description         string `bson:"description,omitempty" json:"description,omitempty"`
	PrimaryButtonText   string `bson:"primaryButtonText,omitempty" json:"primaryButtonText,omitempty"`
	SecondaryButtonText string `bson:"secondaryButtonText,omitempty" json:"secondaryButtonText,omitempty"`
}

// Footer is the singleton site-wide footer document.
type Footer struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CompanyName        string             `bson:"companyName" json:"companyName"`
	CompanyDescription string             `bson:"companyDescription,omitempty" json:"companyDescription,omitempty"`
	NavigationTitle    string             `bson:"navigationTitle,omitempty" json:"navigationTitle,omitempty"`
	NavigationLinks    []NavigationLink   `bson:"navigationLinks,omitempty" json:"navigationLinks,omitempty"`
	ContactTitle       string             `bson:"contactTitle,omitempty" json:"contactTitle,omitempty"`
	Address            string             `bson:"address,omitempty" json:"address,omitempty"`
	Phone              string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	MapsEmbedURL       string             `bson:"mapsEmbedUrl,omitempty" json:"mapsEmbedUrl,omitempty"`
	SocialLinks        []SocialLink       `bson:"socialLinks" json:"socialLinks"`
	ShowLogo           bool               `bson:"showLogo" json:"showLogo"`
	LogoOpacity        int                `bson:"logoOpacity" json:"logoOpacity"`
	UpdatedAt          time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type NavigationLink struct {
	Label string `bson:"label" json:"label"`
	Href  string `bson:"href" json:"href"`
}

type SocialLink struct {
	Platform string `bson:"platform" json:"platform"`
	URL      string `bson:"url" json:"url"`
}

var socialPlatforms = []string{"facebook", "linkedin", "instagram", "twitter", "youtube"}

func ValidSocialPlatform(v string) bool { return contains(socialPlatforms, v) }

// Media is an uploaded file record. Referencing documents hold the ObjectID;
// deleting a media record never cascades into them.
type Media struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Filename     string             `bson:"filename" json:"filename"`
	Alt          string             `bson:"alt,omitempty" json:"alt,omitempty"`
	URL          string             `bson:"url" json:"url"`
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	Width        int                `bson:"width" json:"width"`
	Height       int                `bson:"height" json:"height"`
	MimeType     string             `bson:"mimeType" json:"mimeType"`
	Size         int                `bson:"size" json:"size"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// User is an editor account. Password holds the bcrypt hash and is never
// serialized; the collection has no public read access.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

func contains(vals []string, v string) bool {
	for _, s := range vals {
		if s == v {
			return true
		}
	}
	return false
}
