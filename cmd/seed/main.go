// Command seed populates a fresh content database with the built-in
// default documents and, optionally, an editor account. Safe to run more
// than once: existing documents are left alone.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/digitalmahadata/compro"
)

func main() {
	var (
		pages     = flag.Bool("pages", false, "seed the default site pages")
		services  = flag.Bool("services", false, "seed the default services")
		footer    = flag.Bool("footer", false, "seed the default footer")
		about     = flag.Bool("about", false, "seed the default about document")
		all       = flag.Bool("all", false, "seed everything above")
		portfolio = flag.String("portfolio", "", "path to a JSON file of portfolio items to import")
		email     = flag.String("admin-email", "", "create an admin account with this email")
	)
	flag.Parse()

	uri := compro.MustEnv("MONGO_URI")
	database := compro.EnvOr("MONGO_DATABASE", "dmp-compro")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := compro.NewMongoStore(ctx, uri, database)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close(context.Background())

	if *all || *pages {
		seedPages(ctx, store)
	}
	if *all || *services {
		seedServices(ctx, store)
	}
	if *all || *footer {
		seedFooter(ctx, store)
	}
	if *all || *about {
		seedAbout(ctx, store)
	}
	if *portfolio != "" {
		seedPortfolio(ctx, store, *portfolio)
	}
	if *email != "" {
		seedAdmin(ctx, store, *email)
	}
}

func seedPages(ctx context.Context, store compro.Store) {
	for _, p := range compro.DefaultPages() {
		p := p
		err := store.CreatePage(ctx, &p)
		switch {
		case errors.Is(err, compro.ErrDuplicateSlug):
			fmt.Printf("page %q already exists, skipped\n", p.Slug)
		case err != nil:
			log.Fatalf("seed page %q: %v", p.Slug, err)
		default:
			fmt.Printf("page %q created\n", p.Slug)
		}
	}
}

func seedServices(ctx context.Context, store compro.Store) {
	existing, err := store.ListServices(ctx, compro.ServiceFilter{Status: compro.ServiceStatusActive})
	if err != nil {
		log.Fatalf("list services: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d services already present, skipped\n", len(existing))
		return
	}
	for _, s := range compro.DefaultServices() {
		s := s
		if err := store.CreateService(ctx, &s); err != nil {
			log.Fatalf("seed service %q: %v", s.Title, err)
		}
		fmt.Printf("service %q created\n", s.Title)
	}
}

func seedFooter(ctx context.Context, store compro.Store) {
	f := compro.DefaultFooter()
	err := store.CreateFooter(ctx, f)
	switch {
	case errors.Is(err, compro.ErrSingletonExists):
		fmt.Println("footer already exists, skipped")
	case err != nil:
		log.Fatalf("seed footer: %v", err)
	default:
		fmt.Println("footer created")
	}
}

func seedAbout(ctx context.Context, store compro.Store) {
	if _, err := store.GetAbout(ctx); err == nil {
		fmt.Println("about already exists, skipped")
		return
	} else if !errors.Is(err, compro.ErrNotFound) {
		log.Fatalf("check about: %v", err)
	}
	a := compro.DefaultAbout()
	if err := store.UpsertAbout(ctx, a); err != nil {
		log.Fatalf("seed about: %v", err)
	}
	fmt.Println("about created")
}

func seedPortfolio(ctx context.Context, store compro.Store, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read portfolio file: %v", err)
	}
	var items []compro.PortfolioItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Fatalf("parse portfolio file: %v", err)
	}
	for _, item := range items {
		item := item
		err := store.CreatePortfolio(ctx, &item)
		switch {
		case errors.Is(err, compro.ErrDuplicateSlug):
			fmt.Printf("portfolio %q already exists, skipped\n", item.Slug)
		case err != nil:
			log.Fatalf("seed portfolio %q: %v", item.Slug, err)
		default:
			fmt.Printf("portfolio %q created\n", item.Slug)
		}
	}
}

func seedAdmin(ctx context.Context, store compro.Store, email string) {
	password := compro.MustEnv("ADMIN_PASSWORD")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	u := compro.User{
		Name:     compro.EnvOr("ADMIN_NAME", "Admin"),
		Email:    email,
		Password: string(hash),
		Role:     compro.RoleAdmin,
	}
	err = store.CreateUser(ctx, &u)
	switch {
	case errors.Is(err, compro.ErrDuplicateEmail):
		fmt.Printf("user %q already exists, skipped\n", email)
	case err != nil:
		log.Fatalf("create user: %v", err)
	default:
		fmt.Printf("user %q created\n", email)
	}
}
