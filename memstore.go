package compro

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory Store with the same semantics as MongoStore,
// unique indexes included. It backs the test suite and lets the service run
// without a database (the status endpoint reports that mode as degraded).
type MemStore struct {
	mu        sync.RWMutex
	pages     []Page
	portfolio []PortfolioItem
	services  []Service
	about     *About
	footer    *Footer
	media     []Media
	users     []User
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Close(ctx context.Context) error { return nil }

// --- Pages ---

func (s *MemStore) ListPages(ctx context.Context, f PageFilter, limit int) ([]Page, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Page
	for _, p := range s.pages {
		if f.PageType != "" && p.PageType != f.PageType {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.ShowInMainMenu && !p.Navigation.ShowInMainMenu {
			continue
		}
		if f.Slug != "" && p.Slug != f.Slug {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Navigation.MenuOrder < matched[j].Navigation.MenuOrder
	})
	total := len(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *MemStore) CreatePage(ctx context.Context, p *Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.pages {
		if existing.Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	p.ID = primitive.NewObjectID()
	touch(&p.CreatedAt, &p.UpdatedAt)
	s.pages = append(s.pages, *p)
	return nil
}

// --- Portfolio ---

func (s *MemStore) ListPortfolio(ctx context.Context, limit int) ([]PortfolioItem, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]PortfolioItem, len(s.portfolio))
	copy(items, s.portfolio)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	total := len(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (s *MemStore) GetPortfolioByID(ctx context.Context, id primitive.ObjectID) (*PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.portfolio {
		if s.portfolio[i].ID == id {
			item := s.portfolio[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetPortfolioBySlug(ctx context.Context, slug string) (*PortfolioItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.portfolio {
		if s.portfolio[i].Slug == slug {
			item := s.portfolio[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) PortfolioSlugInUse(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.portfolio {
		if s.portfolio[i].Slug == slug && s.portfolio[i].ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemStore) CreatePortfolio(ctx context.Context, p *PortfolioItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.portfolio {
		if s.portfolio[i].Slug == p.Slug {
			return ErrDuplicateSlug
		}
	}
	p.ID = primitive.NewObjectID()
	touch(&p.CreatedAt, &p.UpdatedAt)
	s.portfolio = append(s.portfolio, *p)
	return nil
}

func (s *MemStore) UpdatePortfolio(ctx context.Context, id primitive.ObjectID, u *PortfolioUpdate) (*PortfolioItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.portfolio {
		if s.portfolio[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}
	if u.Slug != nil {
		for i := range s.portfolio {
			if i != idx && s.portfolio[i].Slug == *u.Slug {
				return nil, ErrDuplicateSlug
			}
		}
	}

	item := &s.portfolio[idx]
	if u.Title != nil {
		item.Title = *u.Title
	}
	if u.Slug != nil {
		item.Slug = *u.Slug
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Client != nil {
		item.Client = *u.Client
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Technologies != nil {
		item.Technologies = *u.Technologies
	}
	if u.Featured != nil {
		item.Featured = *u.Featured
	}
	if u.Status != nil {
		item.Status = *u.Status
	}
	if u.CompletedAt != nil {
		item.CompletedAt = *u.CompletedAt
	}
	if u.ProjectURL != nil {
		item.ProjectURL = *u.ProjectURL
	}
	if u.Challenge != nil {
		item.Challenge = *u.Challenge
	}
	if u.Solution != nil {
		item.Solution = *u.Solution
	}
	if u.Results != nil {
		item.Results = *u.Results
	}
	if u.FeaturedImage != nil {
		item.FeaturedImage = *u.FeaturedImage
	}
	if u.Gallery != nil {
		item.Gallery = *u.Gallery
	}
	if u.Testimonial != nil {
		item.Testimonial = *u.Testimonial
	}
	if u.Metrics != nil {
		item.Metrics = *u.Metrics
	}
	item.UpdatedAt = time.Now().UTC()

	out := *item
	return &out, nil
}

func (s *MemStore) DeletePortfolio(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.portfolio {
		if s.portfolio[i].ID == id {
			s.portfolio = append(s.portfolio[:i], s.portfolio[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- Services ---

func (s *MemStore) ListServices(ctx context.Context, f ServiceFilter) ([]Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Service
	for _, svc := range s.services {
		if svc.Status != f.Status {
			continue
		}
		if f.Featured && !svc.Featured {
			continue
		}
		matched = append(matched, svc)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Order < matched[j].Order
	})
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (s *MemStore) CreateService(ctx context.Context, svc *Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = primitive.NewObjectID()
	touch(&svc.CreatedAt, &svc.UpdatedAt)
	s.services = append(s.services, *svc)
	return nil
}

// --- Singletons ---

func (s *MemStore) GetAbout(ctx context.Context) (*About, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.about == nil {
		return nil, ErrNotFound
	}
	a := *s.about
	return &a, nil
}

func (s *MemStore) UpsertAbout(ctx context.Context, a *About) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The document id survives upserts, matching the replace semantics of
	// the MongoDB store.
	if s.about != nil {
		a.ID = s.about.ID
	} else if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.UpdatedAt = time.Now().UTC()
	copied := *a
	s.about = &copied
	return nil
}

func (s *MemStore) GetFooter(ctx context.Context) (*Footer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.footer == nil {
		return nil, ErrNotFound
	}
	f := *s.footer
	return &f, nil
}

func (s *MemStore) CreateFooter(ctx context.Context, f *Footer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.footer != nil {
		return ErrSingletonExists
	}
	f.ID = primitive.NewObjectID()
	f.UpdatedAt = time.Now().UTC()
	copied := *f
	s.footer = &copied
	return nil
}

func (s *MemStore) UpsertFooter(ctx context.Context, f *Footer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.footer != nil {
		f.ID = s.footer.ID
	} else if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	f.UpdatedAt = time.Now().UTC()
	copied := *f
	s.footer = &copied
	return nil
}

// --- Media ---

func (s *MemStore) ListMedia(ctx context.Context) ([]Media, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	media := make([]Media, len(s.media))
	copy(media, s.media)
	sort.SliceStable(media, func(i, j int) bool {
		return media[i].CreatedAt.After(media[j].CreatedAt)
	})
	return media, nil
}

func (s *MemStore) GetMedia(ctx context.Context, id primitive.ObjectID) (*Media, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.media {
		if s.media[i].ID == id {
			m := s.media[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateMedia(ctx context.Context, m *Media) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = primitive.NewObjectID()
	touch(&m.CreatedAt, nil)
	s.media = append(s.media, *m)
	return nil
}

func (s *MemStore) DeleteMedia(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.media {
		if s.media[i].ID == id {
			s.media = append(s.media[:i], s.media[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// --- Users ---

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	touch(&u.CreatedAt, nil)
	s.users = append(s.users, *u)
	return nil
}
