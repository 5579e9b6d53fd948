package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopvue/storefront/pkg/commerce"
	"github.com/shopvue/storefront/pkg/config"
	"github.com/shopvue/storefront/pkg/logger"
)

type remoteCatalog interface {
	GetProducts(ctx context.Context) ([]commerce.Product, error)
	GetProductsByCategory(ctx context.Context, slug string) ([]commerce.Product, error)
	GetCategories(ctx context.Context) ([]commerce.Category, error)
	SearchProducts(ctx context.Context, query string) ([]commerce.Product, error)
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(parts ...string) string
}

// Service serves the browsable catalog. Remote data is cached; when the
// remote API is unreachable the built-in fallback catalog keeps product pages
// rendering.
type Service interface {
	Products(ctx context.Context) []commerce.Product
	ProductsByCategory(ctx context.Context, slug string) []commerce.Product
	Categories(ctx context.Context) []commerce.Category
	Search(ctx context.Context, query string) []commerce.Product
	Featured(ctx context.Context) []commerce.Product
	Product(ctx context.Context, productID string) (*commerce.Product, bool)
}

type service struct {
	remote        remoteCatalog
	cache         cache
	logg          *logger.Logger
	ttl           time.Duration
	featuredCount int
}

// NewService builds the catalog service. A nil cache disables caching.
func NewService(remote remoteCatalog, cacheClient cache, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if remote == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	featured := cfg.FeaturedCount
	if featured <= 0 {
		featured = 8
	}
	return &service{
		remote:        remote,
		cache:         cacheClient,
		logg:          logg,
		ttl:           cfg.CacheTTL,
		featuredCount: featured,
	}, nil
}

func (s *service) Products(ctx context.Context) []commerce.Product {
	var products []commerce.Product
	if s.cached(ctx, s.key("products"), &products) {
		return products
	}

	products, err := s.remote.GetProducts(ctx)
	if err != nil || len(products) == 0 {
		s.warnFallback(ctx, "products", err)
		return fallbackProducts()
	}

	s.store(ctx, s.key("products"), products)
	return products
}

func (s *service) ProductsByCategory(ctx context.Context, slug string) []commerce.Product {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return s.Products(ctx)
	}

	var products []commerce.Product
	if s.cached(ctx, s.key("category", slug), &products) {
		return products
	}

	products, err := s.remote.GetProductsByCategory(ctx, slug)
	if err != nil {
		s.warnFallback(ctx, "category "+slug, err)
		return filterByCategory(fallbackProducts(), slug)
	}

	s.store(ctx, s.key("category", slug), products)
	return products
}

func (s *service) Categories(ctx context.Context) []commerce.Category {
	var categories []commerce.Category
	if s.cached(ctx, s.key("categories"), &categories) {
		return categories
	}

	categories, err := s.remote.GetCategories(ctx)
	if err != nil || len(categories) == 0 {
		s.warnFallback(ctx, "categories", err)
		return fallbackCategories()
	}

	s.store(ctx, s.key("categories"), categories)
	return categories
}

// Search is never cached: queries are too varied to be worth the keyspace.
func (s *service) Search(ctx context.Context, query string) []commerce.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Products(ctx)
	}

	products, err := s.remote.SearchProducts(ctx, query)
	if err != nil {
		s.warnFallback(ctx, "search", err)
		return filterByQuery(fallbackProducts(), query)
	}
	return products
}

// Featured returns the top-rated slice of the catalog for the home page.
func (s *service) Featured(ctx context.Context) []commerce.Product {
	products := s.Products(ctx)

	ranked := make([]commerce.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if len(ranked) > s.featuredCount {
		ranked = ranked[:s.featuredCount]
	}
	return ranked
}

func (s *service) Product(ctx context.Context, productID string) (*commerce.Product, bool) {
	for _, product := range s.Products(ctx) {
		if product.ID == productID || product.Slug == productID {
			p := product
			return &p, true
		}
	}
	return nil, false
}

func (s *service) key(parts ...string) string {
	if s.cache == nil {
		return ""
	}
	return s.cache.CatalogKey(parts...)
}

func (s *service) cached(ctx context.Context, key string, out any) bool {
	if s.cache == nil || key == "" {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), out) == nil
}

func (s *service) store(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("catalog cache write failed: %v", err))
	}
}

func (s *service) warnFallback(ctx context.Context, what string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, fmt.Sprintf("remote catalog unavailable for %s, serving fallback: %v", what, err))
}

func filterByCategory(products []commerce.Product, slug string) []commerce.Product {
	var out []commerce.Product
	for _, product := range products {
		if product.Category == slug {
			out = append(out, product)
		}
	}
	return out
}

func filterByQuery(products []commerce.Product, query string) []commerce.Product {
	needle := strings.ToLower(query)
	var out []commerce.Product
	for _, product := range products {
		if strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(strings.ToLower(product.Description), needle) {
			out = append(out, product)
		}
	}
	return out
}
