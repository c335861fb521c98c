// Package main implements a mock marketwatch API server for local
// development. It serves a seeded in-memory catalog so the CLI can be
// exercised without the real backend: search, product detail, offers,
// generated price history, and a fully mutable watch list.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/marketwatch/pricewatch/pkg/logger"
	domain "github.com/marketwatch/pricewatch/pkg/types"
)

const historyDays = 30

func main() {
	port := flag.Int("port", 8000, "port to listen on")
	level := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(*level, "text")

	srv := newServer(log)
	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock marketwatch server", "addr", addr)

	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

// newServer builds the echo application over a freshly seeded store.
func newServer(log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(requestLog(log))

	s := seedStore()

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")
	api.GET("/search/", s.handleSearch)
	api.GET("/products/", s.handleListProducts)
	api.GET("/products/:id/", s.handleGetProduct)
	api.GET("/offers/", s.handleListOffers)
	api.GET("/price-history/", s.handleListHistory)
	api.GET("/watches/", s.handleListWatches)
	api.POST("/watches/", s.handleCreateWatch)
	api.PATCH("/watches/:id/", s.handleUpdateWatch)
	api.DELETE("/watches/:id/", s.handleDeleteWatch)

	return e
}

func requestLog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Debug("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"query", c.Request().URL.RawQuery,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

type envelope struct {
	Results any `json:"results"`
}

// store holds the in-memory catalog. Products and offers are immutable
// after seeding; watches are mutable behind the mutex.
type store struct {
	mu          sync.Mutex
	products    []domain.Product
	offers      []domain.Offer
	watches     map[int]domain.Watch
	nextWatchID int
}

func seedStore() *store {
	day := func(d int) time.Time {
		return time.Date(2026, time.July, d, 9, 0, 0, 0, time.UTC)
	}

	return &store{
		products: []domain.Product{
			{ID: 1, Brand: "삼성전자", ModelCode: "SM-S921N", Name: "갤럭시 S24 256GB", GTIN: "8806095231211", CreatedAt: day(1)},
			{ID: 2, Brand: "삼성전자", ModelCode: "SM-S928N", Name: "갤럭시 S24 울트라 512GB", GTIN: "8806095231228", CreatedAt: day(1)},
			{ID: 3, Brand: "LG전자", ModelCode: "17Z90SP-KA5CK", Name: "그램 17 코어 울트라5", GTIN: "8806096122334", CreatedAt: day(3)},
			{ID: 4, Brand: "Apple", ModelCode: "MTP03KH/A", Name: "아이폰 15 128GB", GTIN: "195949036019", CreatedAt: day(5)},
			{ID: 5, Brand: "다이슨", ModelCode: "SV46", Name: "V15 디텍트 무선청소기", CreatedAt: day(8)},
		},
		offers: []domain.Offer{
			{ID: 11, Marketplace: "쿠팡", Seller: "쿠팡", Price: 1150000, ShippingFee: 0, TotalPrice: 1150000, URL: "https://coupang.example/11", AffiliateURL: "https://link.example/c/11", FetchedAt: day(28)},
			{ID: 12, Marketplace: "11번가", Seller: "디지털프라자", Price: 1139000, ShippingFee: 3000, TotalPrice: 1142000, URL: "https://11st.example/12", FetchedAt: day(28)},
			{ID: 13, Marketplace: "G마켓", Seller: "모바일샵", Price: 1160000, ShippingFee: 0, TotalPrice: 1160000, URL: "https://gmarket.example/13", FetchedAt: day(28)},
			{ID: 21, Marketplace: "쿠팡", Seller: "쿠팡", Price: 1690000, ShippingFee: 0, TotalPrice: 1690000, URL: "https://coupang.example/21", FetchedAt: day(28)},
			{ID: 22, Marketplace: "네이버", Seller: "삼성공식스토어", Price: 1698000, ShippingFee: 0, TotalPrice: 1698000, URL: "https://naver.example/22", FetchedAt: day(28)},
			{ID: 31, Marketplace: "11번가", Seller: "노트북왕국", Price: 1890000, ShippingFee: 2500, TotalPrice: 1892500, URL: "https://11st.example/31", FetchedAt: day(28)},
			{ID: 41, Marketplace: "쿠팡", Seller: "쿠팡", Price: 1190000, ShippingFee: 0, TotalPrice: 1190000, URL: "https://coupang.example/41", FetchedAt: day(28)},
			{ID: 42, Marketplace: "옥션", Seller: "애플셀러", Price: 1175000, ShippingFee: 3000, TotalPrice: 1178000, URL: "https://auction.example/42", FetchedAt: day(28)},
			{ID: 51, Marketplace: "G마켓", Seller: "가전할인몰", Price: 890000, ShippingFee: 0, TotalPrice: 890000, URL: "https://gmarket.example/51", FetchedAt: day(28)},
			{ID: 52, Marketplace: "카카오", Seller: "다이슨공식", Price: 920000, ShippingFee: 0, TotalPrice: 920000, URL: "https://kakao.example/52", FetchedAt: day(28)},
		},
		watches:     make(map[int]domain.Watch),
		nextWatchID: 1,
	}
}

// productForOffer maps a seeded offer id back to its product: the offer
// id's tens digit is the product id.
func (s *store) productForOffer(offerID int) int {
	return offerID / 10
}

func (s *store) offersFor(productID int) []domain.Offer {
	var out []domain.Offer
	for _, o := range s.offers {
		if s.productForOffer(o.ID) == productID {
			out = append(out, o)
		}
	}
	return out
}

// annotate fills a product's aggregate fields from its offers.
func (s *store) annotate(p domain.Product) domain.Product {
	offers := s.offersFor(p.ID)
	p.OfferCount = len(offers)
	p.Marketplaces = nil
	seen := map[string]bool{}

	var best *domain.Offer
	for i := range offers {
		o := &offers[i]
		if !seen[o.Marketplace] {
			seen[o.Marketplace] = true
			p.Marketplaces = append(p.Marketplaces, o.Marketplace)
		}
		if best == nil || o.TotalPrice < best.TotalPrice {
			best = o
		}
	}
	if best != nil {
		p.BestPrice = &domain.BestPrice{
			Price:       best.Price,
			TotalPrice:  best.TotalPrice,
			Marketplace: best.Marketplace,
			Seller:      best.Seller,
		}
	}
	return p
}

func (s *store) findProduct(id int) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return s.annotate(p), true
		}
	}
	return domain.Product{}, false
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *store) handleSearch(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	needle := strings.ToLower(q)

	result := domain.SearchResult{Query: q, Products: []domain.Product{}, Offers: []domain.Offer{}}
	for _, p := range s.products {
		haystack := strings.ToLower(strings.Join([]string{p.Brand, p.ModelCode, p.Name, p.GTIN}, " "))
		if needle == "" || strings.Contains(haystack, needle) {
			annotated := s.annotate(p)
			result.Products = append(result.Products, annotated)
			result.Offers = append(result.Offers, s.offersFor(p.ID)...)

			if annotated.BestPrice == nil {
				continue
			}
			if result.BestPrice == nil || annotated.BestPrice.TotalPrice < result.BestPrice.TotalPrice {
				bp := *annotated.BestPrice
				bp.ProductID = p.ID
				result.BestPrice = &bp
			}
		}
	}
	result.Count = len(result.Products)

	return c.JSON(http.StatusOK, result)
}

func (s *store) handleListProducts(c echo.Context) error {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, s.annotate(p))
	}
	return c.JSON(http.StatusOK, envelope{Results: out})
}

func (s *store) handleGetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notFound(c)
	}
	p, ok := s.findProduct(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *store) handleListOffers(c echo.Context) error {
	productID := 0
	if raw := c.QueryParam("product_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "product_id must be an integer"})
		}
		productID = v
	}
	marketplace := c.QueryParam("marketplace")

	out := make([]domain.Offer, 0)
	for _, o := range s.offers {
		if productID != 0 && s.productForOffer(o.ID) != productID {
			continue
		}
		if marketplace != "" && o.Marketplace != marketplace {
			continue
		}
		if p, ok := s.findProduct(s.productForOffer(o.ID)); ok {
			o.ProductBrand = p.Brand
			o.ProductModel = p.ModelCode
			o.ProductName = p.Name
		}
		out = append(out, o)
	}
	return c.JSON(http.StatusOK, envelope{Results: out})
}

func (s *store) handleListHistory(c echo.Context) error {
	offerID := 0
	if raw := c.QueryParam("offer_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "offer_id must be an integer"})
		}
		offerID = v
	}

	out := make([]domain.PricePoint, 0)
	for _, o := range s.offers {
		if offerID != 0 && o.ID != offerID {
			continue
		}
		out = append(out, generateHistory(o)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return c.JSON(http.StatusOK, envelope{Results: out})
}

// generateHistory produces a daily price walk ending at the offer's current
// price, varying within roughly ±10%. Seeding the generator with the offer
// id keeps repeated requests stable.
func generateHistory(o domain.Offer) []domain.PricePoint {
	rng := rand.New(rand.NewSource(int64(o.ID)))

	points := make([]domain.PricePoint, 0, historyDays)
	for i := 0; i < historyDays; i++ {
		daysAgo := historyDays - 1 - i
		price := o.Price
		if daysAgo > 0 {
			price = o.Price * (1 + (rng.Float64()*0.2 - 0.1))
			price = float64(int(price/100) * 100)
		}
		points = append(points, domain.PricePoint{
			ID:          o.ID*1000 + i,
			Marketplace: o.Marketplace,
			Seller:      o.Seller,
			Price:       price,
			TotalPrice:  price + o.ShippingFee,
			RecordedAt:  o.FetchedAt.AddDate(0, 0, -daysAgo),
		})
	}
	return points
}

func (s *store) handleListWatches(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := 0
	if raw := c.QueryParam("user_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "user_id must be an integer"})
		}
		userID = v
	}

	out := make([]domain.Watch, 0, len(s.watches))
	for _, w := range s.watches {
		if userID != 0 && w.UserID != userID {
			continue
		}
		if p, ok := s.findProduct(w.Product.ID); ok {
			w.Product = p
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return c.JSON(http.StatusOK, envelope{Results: out})
}

type createWatchRequest struct {
	UserID      int     `json:"user_id"`
	Product     int     `json:"product"`
	TargetPrice float64 `json:"target_price"`
}

func (s *store) handleCreateWatch(c echo.Context) error {
	var req createWatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid body"})
	}
	if req.UserID <= 0 || req.TargetPrice <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "user_id and target_price must be positive"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProduct(req.Product)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "unknown product"})
	}

	w := domain.Watch{
		ID:          s.nextWatchID,
		UserID:      req.UserID,
		Product:     p,
		TargetPrice: req.TargetPrice,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextWatchID++
	s.watches[w.ID] = w

	return c.JSON(http.StatusCreated, w)
}

type watchPatch struct {
	TargetPrice *float64 `json:"target_price"`
	IsActive    *bool    `json:"is_active"`
}

func (s *store) handleUpdateWatch(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notFound(c)
	}

	var patch watchPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.watches[id]
	if !ok {
		return notFound(c)
	}
	if patch.TargetPrice != nil {
		if *patch.TargetPrice <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "target_price must be positive"})
		}
		w.TargetPrice = *patch.TargetPrice
	}
	if patch.IsActive != nil {
		w.IsActive = *patch.IsActive
	}
	s.watches[id] = w

	return c.JSON(http.StatusOK, w)
}

func (s *store) handleDeleteWatch(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return notFound(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.watches[id]; !ok {
		return notFound(c)
	}
	delete(s.watches, id)

	return c.NoContent(http.StatusNoContent)
}
