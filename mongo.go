package compro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// singletonKey is the fixed key under which the footer and about documents
// are stored. Combined with a unique index it guarantees at most one
// document per collection, so concurrent creates cannot race past the
// exists pre-check.
const singletonKey = "singleton"

// MongoStore is the MongoDB-backed Store.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB, pings it, and ensures the unique
// indexes the content model relies on.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	s := &MongoStore{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return s, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	for coll, keys := range map[string]bson.D{
		"pages":     {{Key: "slug", Value: 1}},
		"portfolio": {{Key: "slug", Value: 1}},
		"users":     {{Key: "email", Value: 1}},
		"footer":    {{Key: "key", Value: 1}},
		"about":     {{Key: "key", Value: 1}},
	} {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    keys,
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("index %s: %w", coll, err)
		}
	}
	_, err := s.db.Collection("portfolio").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// --- Pages ---

func (s *MongoStore) ListPages(ctx context.Context, f PageFilter, limit int) ([]Page, int, error) {
	filter := bson.D{}
	if f.PageType != "" {
		filter = append(filter, bson.E{Key: "pageType", Value: f.PageType})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}
	if f.ShowInMainMenu {
		filter = append(filter, bson.E{Key: "navigation.showInMainMenu", Value: true})
	}
	if f.Slug != "" {
		filter = append(filter, bson.E{Key: "slug", Value: f.Slug})
	}

	total, err := s.db.Collection("pages").CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count pages: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "navigation.menuOrder", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.db.Collection("pages").Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find pages: %w", err)
	}
	var pages []Page
	if err := cur.All(ctx, &pages); err != nil {
		return nil, 0, fmt.Errorf("decode pages: %w", err)
	}
	return pages, int(total), nil
}

func (s *MongoStore) CreatePage(ctx context.Context, p *Page) error {
	p.ID = primitive.NewObjectID()
	touch(&p.CreatedAt, &p.UpdatedAt)
	_, err := s.db.Collection("pages").InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

// --- Portfolio ---

func (s *MongoStore) ListPortfolio(ctx context.Context, limit int) ([]PortfolioItem, int, error) {
	coll := s.db.Collection("portfolio")
	total, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("count portfolio: %w", err)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find portfolio: %w", err)
	}
	var items []PortfolioItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode portfolio: %w", err)
	}
	return items, int(total), nil
}

func (s *MongoStore) GetPortfolioByID(ctx context.Context, id primitive.ObjectID) (*PortfolioItem, error) {
	var item PortfolioItem
	err := s.db.Collection("portfolio").FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoStore) GetPortfolioBySlug(ctx context.Context, slug string) (*PortfolioItem, error) {
	var item PortfolioItem
	err := s.db.Collection("portfolio").FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoStore) PortfolioSlugInUse(ctx context.Context, slug string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.D{{Key: "slug", Value: slug}}
	if !exclude.IsZero() {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: exclude}}})
	}
	n, err := s.db.Collection("portfolio").CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func (s *MongoStore) CreatePortfolio(ctx context.Context, p *PortfolioItem) error {
	p.ID = primitive.NewObjectID()
	touch(&p.CreatedAt, &p.UpdatedAt)
	_, err := s.db.Collection("portfolio").InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (s *MongoStore) UpdatePortfolio(ctx context.Context, id primitive.ObjectID, u *PortfolioUpdate) (*PortfolioItem, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	add := func(key string, v any) { set = append(set, bson.E{Key: key, Value: v}) }
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Slug != nil {
		add("slug", *u.Slug)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Client != nil {
		add("client", *u.Client)
	}
	if u.Category != nil {
		add("category", *u.Category)
	}
	if u.Technologies != nil {
		add("technologies", *u.Technologies)
	}
	if u.Featured != nil {
		add("featured", *u.Featured)
	}
	if u.Status != nil {
		add("status", *u.Status)
	}
	if u.CompletedAt != nil {
		add("completedAt", *u.CompletedAt)
	}
	if u.ProjectURL != nil {
		add("projectUrl", *u.ProjectURL)
	}
	if u.Challenge != nil {
		add("challenge", *u.Challenge)
	}
	if u.Solution != nil {
		add("solution", *u.Solution)
	}
	if u.Results != nil {
		add("results", *u.Results)
	}
	if u.FeaturedImage != nil {
		add("featuredImage", *u.FeaturedImage)
	}
	if u.Gallery != nil {
		add("gallery", *u.Gallery)
	}
	if u.Testimonial != nil {
		add("testimonial", *u.Testimonial)
	}
	if u.Metrics != nil {
		add("metrics", *u.Metrics)
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item PortfolioItem
	err := s.db.Collection("portfolio").FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		after,
	).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MongoStore) DeletePortfolio(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection("portfolio").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Services ---

func (s *MongoStore) ListServices(ctx context.Context, f ServiceFilter) ([]Service, error) {
	filter := bson.D{{Key: "status", Value: f.Status}}
	if f.Featured {
		filter = append(filter, bson.E{Key: "featured", Value: true})
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	cur, err := s.db.Collection("services").Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	var services []Service
	if err := cur.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

func (s *MongoStore) CreateService(ctx context.Context, svc *Service) error {
	svc.ID = primitive.NewObjectID()
	touch(&svc.CreatedAt, &svc.UpdatedAt)
	_, err := s.db.Collection("services").InsertOne(ctx, svc)
	return err
}

// --- Singletons ---

// aboutDoc and footerDoc carry the singleton key alongside the public
// document so the unique key index applies.
type aboutDoc struct {
	Key   string `bson:"key"`
	About `bson:",inline"`
}

type footerDoc struct {
	Key    string `bson:"key"`
	Footer `bson:",inline"`
}

func (s *MongoStore) GetAbout(ctx context.Context) (*About, error) {
	var doc aboutDoc
	err := s.db.Collection("about").FindOne(ctx, bson.D{{Key: "key", Value: singletonKey}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.About, nil
}

func (s *MongoStore) UpsertAbout(ctx context.Context, a *About) error {
	a.UpdatedAt = time.Now().UTC()
	// The replacement must carry the matched document's _id, which is
	// immutable. Editors do not send one, so resolve it here.
	existing, err := s.GetAbout(ctx)
	switch {
	case err == nil:
		a.ID = existing.ID
	case errors.Is(err, ErrNotFound):
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
	default:
		return err
	}
	_, err = s.db.Collection("about").ReplaceOne(ctx,
		bson.D{{Key: "key", Value: singletonKey}},
		aboutDoc{Key: singletonKey, About: *a},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) GetFooter(ctx context.Context) (*Footer, error) {
	var doc footerDoc
	err := s.db.Collection("footer").FindOne(ctx, bson.D{{Key: "key", Value: singletonKey}}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc.Footer, nil
}

func (s *MongoStore) CreateFooter(ctx context.Context, f *Footer) error {
	f.ID = primitive.NewObjectID()
	f.UpdatedAt = time.Now().UTC()
	_, err := s.db.Collection("footer").InsertOne(ctx, footerDoc{Key: singletonKey, Footer: *f})
	if mongo.IsDuplicateKeyError(err) {
		return ErrSingletonExists
	}
	return err
}

func (s *MongoStore) UpsertFooter(ctx context.Context, f *Footer) error {
	f.UpdatedAt = time.Now().UTC()
	existing, err := s.GetFooter(ctx)
	switch {
	case err == nil:
		f.ID = existing.ID
	case errors.Is(err, ErrNotFound):
		if f.ID.IsZero() {
			f.ID = primitive.NewObjectID()
		}
	default:
		return err
	}
	_, err = s.db.Collection("footer").ReplaceOne(ctx,
		bson.D{{Key: "key", Value: singletonKey}},
		footerDoc{Key: singletonKey, Footer: *f},
		options.Replace().SetUpsert(true),
	)
	return err
}

// --- Media ---

func (s *MongoStore) ListMedia(ctx context.Context) ([]Media, error) {
	cur, err := s.db.Collection("media").Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	var media []Media
	if err := cur.All(ctx, &media); err != nil {
		return nil, fmt.Errorf("decode media: %w", err)
	}
	return media, nil
}

func (s *MongoStore) GetMedia(ctx context.Context, id primitive.ObjectID) (*Media, error) {
	var m Media
	err := s.db.Collection("media").FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MongoStore) CreateMedia(ctx context.Context, m *Media) error {
	m.ID = primitive.NewObjectID()
	touch(&m.CreatedAt, nil)
	_, err := s.db.Collection("media").InsertOne(ctx, m)
	return err
}

func (s *MongoStore) DeleteMedia(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection("media").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Users ---

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.Collection("users").FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *User) error {
	u.ID = primitive.NewObjectID()
	touch(&u.CreatedAt, nil)
	_, err := s.db.Collection("users").InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}
