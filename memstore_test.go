package compro

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemStorePageSlugUnique(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	p := Page{Title: "Home", Slug: "home", PageType: PageTypeHome, Status: PageStatusPublished}
	if err := s.CreatePage(ctx, &p); err != nil {
		t.Fatalf("CreatePage failed: %v", err)
	}
	if p.ID.IsZero() {
		t.Fatal("expected id to be assigned")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	dup := Page{Title: "Home 2", Slug: "home"}
	if err := s.CreatePage(ctx, &dup); !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("expected ErrDuplicateSlug, got %v", err)
	}
}

func TestMemStoreListPagesFilters(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	pages := []Page{
		{Title: "Home", Slug: "home", PageType: PageTypeHome, Status: PageStatusPublished,
			Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 1}},
		{Title: "About", Slug: "about", PageType: PageTypeAbout, Status: PageStatusPublished,
			Navigation: PageNavigation{ShowInMainMenu: true, MenuOrder: 2}},
		{Title: "Hidden", Slug: "hidden", PageType: PageTypeCustom, Status: PageStatusDraft,
			Navigation: PageNavigation{MenuOrder: 3}},
	}
	for i := range pages {
		if err := s.CreatePage(ctx, &pages[i]); err != nil {
			t.Fatalf("CreatePage failed: %v", err)
		}
	}

	got, total, err := s.ListPages(ctx, PageFilter{Status: PageStatusPublished, ShowInMainMenu: true}, 0)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if total != 2 || len(got) != 2 {
		t.Fatalf("got %d pages (total %d), want 2", len(got), total)
	}
	if got[0].Slug != "home" || got[1].Slug != "about" {
		t.Fatalf("wrong menu order: %q, %q", got[0].Slug, got[1].Slug)
	}

	got, total, err = s.ListPages(ctx, PageFilter{Slug: "hidden"}, 1)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if total != 1 || got[0].PageType != PageTypeCustom {
		t.Fatalf("slug filter failed: total %d", total)
	}

	// Combined filters are ANDed: published + draft slug matches nothing.
	_, total, err = s.ListPages(ctx, PageFilter{Status: PageStatusPublished, Slug: "hidden"}, 0)
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected no matches, got %d", total)
	}
}

func TestMemStorePortfolioUpdate(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	p := PortfolioItem{Title: "CRM", Slug: "crm", Description: "d", Client: "Acme", Category: "web", Status: PortfolioStatusCompleted}
	if err := s.CreatePortfolio(ctx, &p); err != nil {
		t.Fatalf("CreatePortfolio failed: %v", err)
	}

	title := "CRM Platform"
	featured := true
	got, err := s.UpdatePortfolio(ctx, p.ID, &PortfolioUpdate{Title: &title, Featured: &featured})
	if err != nil {
		t.Fatalf("UpdatePortfolio failed: %v", err)
	}
	if got.Title != "CRM Platform" || !got.Featured {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Slug != "crm" || got.Client != "Acme" {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	// Clearing the featured image via a JSON null round-trips as a nil
	// inner pointer.
	id := primitive.NewObjectID()
	imgPtr := &id
	if _, err := s.UpdatePortfolio(ctx, p.ID, &PortfolioUpdate{FeaturedImage: &imgPtr}); err != nil {
		t.Fatalf("set featured image: %v", err)
	}
	var nilImg *primitive.ObjectID
	got, err = s.UpdatePortfolio(ctx, p.ID, &PortfolioUpdate{FeaturedImage: &nilImg})
	if err != nil {
		t.Fatalf("clear featured image: %v", err)
	}
	if got.FeaturedImage != nil {
		t.Fatal("expected featured image to be cleared")
	}

	if _, err := s.UpdatePortfolio(ctx, primitive.NewObjectID(), &PortfolioUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStorePortfolioSlugInUse(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	a := PortfolioItem{Title: "A", Slug: "a", Description: "d", Client: "c", Category: "web"}
	b := PortfolioItem{Title: "B", Slug: "b", Description: "d", Client: "c", Category: "web"}
	for _, p := range []*PortfolioItem{&a, &b} {
		if err := s.CreatePortfolio(ctx, p); err != nil {
			t.Fatalf("CreatePortfolio failed: %v", err)
		}
	}

	inUse, err := s.PortfolioSlugInUse(ctx, "a", primitive.NilObjectID)
	if err != nil || !inUse {
		t.Fatalf("expected slug a in use, got %v %v", inUse, err)
	}
	// A document's own slug does not conflict with itself.
	inUse, err = s.PortfolioSlugInUse(ctx, "a", a.ID)
	if err != nil || inUse {
		t.Fatalf("expected slug a free when excluding self, got %v %v", inUse, err)
	}
	inUse, err = s.PortfolioSlugInUse(ctx, "b", a.ID)
	if err != nil || !inUse {
		t.Fatalf("expected slug b in use for other doc, got %v %v", inUse, err)
	}
}

func TestMemStoreFooterSingleton(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.GetFooter(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	f := Footer{CompanyName: "PT. Digital Mahadata Prima"}
	if err := s.CreateFooter(ctx, &f); err != nil {
		t.Fatalf("CreateFooter failed: %v", err)
	}
	second := Footer{CompanyName: "Other"}
	if err := s.CreateFooter(ctx, &second); !errors.Is(err, ErrSingletonExists) {
		t.Fatalf("expected ErrSingletonExists, got %v", err)
	}

	f.Email = "info@digitalmahadata.com"
	if err := s.UpsertFooter(ctx, &f); err != nil {
		t.Fatalf("UpsertFooter failed: %v", err)
	}
	got, err := s.GetFooter(ctx)
	if err != nil {
		t.Fatalf("GetFooter failed: %v", err)
	}
	if got.Email != "info@digitalmahadata.com" {
		t.Fatalf("Email = %q after upsert", got.Email)
	}
}

func TestMemStoreSingletonIDStableAcrossUpserts(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	// Editors submit upsert payloads without an id; the stored document
	// keeps its identity across replacements.
	first := Footer{CompanyName: "PT. Digital Mahadata Prima"}
	if err := s.UpsertFooter(ctx, &first); err != nil {
		t.Fatalf("UpsertFooter failed: %v", err)
	}
	if first.ID.IsZero() {
		t.Fatal("expected id to be assigned on insert")
	}
	second := Footer{CompanyName: "PT. Digital Mahadata Prima", Email: "halo@digitalmahadata.com"}
	if err := s.UpsertFooter(ctx, &second); err != nil {
		t.Fatalf("second UpsertFooter failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("footer id changed across upserts: %s then %s", first.ID.Hex(), second.ID.Hex())
	}

	about1 := About{Title: "About"}
	if err := s.UpsertAbout(ctx, &about1); err != nil {
		t.Fatalf("UpsertAbout failed: %v", err)
	}
	about2 := About{Title: "About", HeroTitle: "Updated"}
	if err := s.UpsertAbout(ctx, &about2); err != nil {
		t.Fatalf("second UpsertAbout failed: %v", err)
	}
	if about2.ID != about1.ID {
		t.Fatalf("about id changed across upserts: %s then %s", about1.ID.Hex(), about2.ID.Hex())
	}
}

func TestMemStoreUserEmailUnique(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	u := User{Name: "Editor", Email: "editor@digitalmahadata.com", Password: "x", Role: RoleEditor}
	if err := s.CreateUser(ctx, &u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	dup := User{Name: "Other", Email: "editor@digitalmahadata.com", Password: "y", Role: RoleEditor}
	if err := s.CreateUser(ctx, &dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "editor@digitalmahadata.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.Name != "Editor" {
		t.Fatalf("Name = %q", got.Name)
	}
}
