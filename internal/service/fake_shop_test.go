package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bubblegoods/catalogsync/internal/config"
	"github.com/bubblegoods/catalogsync/internal/shopify"
)

type fakePublication struct {
	ID        string
	Name      string
	Published bool
}

type fakeProduct struct {
	ID     string
	Title  string
	Handle string
	Status string
	Pubs   []fakePublication
}

type publishCall struct {
	ProductID     string
	PublicationID string
	PublishDate   string
}

// fakeShop is an in-memory Admin GraphQL endpoint covering the operations the tools use.
type fakeShop struct {
	mu sync.Mutex

	channels []fakePublication
	pages    [][]fakeProduct

	throttleProducts int    // number of THROTTLED responses before products pages succeed
	retryAfter       string // when set, throttled products pages are HTTP 429 with this Retry-After
	failCount        bool
	breakProducts    bool

	publishUserErrors map[string]string // product id -> userError message
	throttlePublish   map[string]int    // product id -> number of 429s before success
	skipPublishState  map[string]bool   // product id -> accept the mutation but never show it as published

	productRequests int
	productTimes    []time.Time
	afterCursors    []string
	publishCalls    []publishCall
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		publishUserErrors: map[string]string{},
		throttlePublish:   map[string]int{},
		skipPublishState:  map[string]bool{},
	}
}

func (s *fakeShop) server(t *testing.T) *shopify.Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return shopify.NewClient(config.ShopifyConfig{AccessToken: "shpat_test", APIVersion: "2024-10"}, zap.NewNop(),
		shopify.WithEndpoint(srv.URL),
		shopify.WithHTTPClient(srv.Client()),
	)
}

func (s *fakeShop) product(id string) *fakeProduct {
	for i := range s.pages {
		for j := range s.pages[i] {
			if s.pages[i][j].ID == id {
				return &s.pages[i][j]
			}
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pubEdges(pubs []fakePublication) []interface{} {
	edges := make([]interface{}, 0, len(pubs))
	for _, p := range pubs {
		edges = append(edges, map[string]interface{}{
			"node": map[string]interface{}{
				"publication": map[string]interface{}{"id": p.ID, "name": p.Name},
				"isPublished": p.Published,
				"publishDate": "2024-01-01T00:00:00Z",
			},
		})
	}
	return edges
}

func (s *fakeShop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req shopify.GraphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := req.Query
	switch {
	case strings.Contains(q, "query getPublications"):
		edges := []interface{}{}
		for _, ch := range s.channels {
			edges = append(edges, map[string]interface{}{
				"node": map[string]interface{}{"id": ch.ID, "name": ch.Name, "supportsFuturePublishing": true},
			})
		}
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"publications": map[string]interface{}{"edges": edges}}})

	case strings.Contains(q, "query getProductsCount"):
		if s.failCount {
			writeJSON(w, map[string]interface{}{"errors": []interface{}{map[string]interface{}{"message": "Field 'productsCount' doesn't exist"}}})
			return
		}
		n := 0
		for _, p := range s.pages {
			n += len(p)
		}
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"productsCount": map[string]interface{}{"count": n}}})

	case strings.Contains(q, "query getProducts("):
		s.productRequests++
		s.productTimes = append(s.productTimes, time.Now())
		if s.breakProducts {
			writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"shop": nil}})
			return
		}
		if s.throttleProducts > 0 {
			s.throttleProducts--
			if s.retryAfter != "" {
				w.Header().Set("Retry-After", s.retryAfter)
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeJSON(w, map[string]interface{}{"errors": []interface{}{map[string]interface{}{"message": "Throttled", "extensions": map[string]interface{}{"code": "THROTTLED"}}}})
			return
		}
		after, _ := req.Variables["after"].(string)
		s.afterCursors = append(s.afterCursors, after)
		idx := 0
		if after != "" {
			fmt.Sscanf(after, "page-%d", &idx)
		}
		var page []fakeProduct
		if idx < len(s.pages) {
			page = s.pages[idx]
		}
		edges := []interface{}{}
		for _, p := range page {
			edges = append(edges, map[string]interface{}{
				"cursor": p.ID,
				"node": map[string]interface{}{
					"id":                   p.ID,
					"title":                p.Title,
					"handle":               p.Handle,
					"status":               p.Status,
					"createdAt":            "2024-01-02T03:04:05Z",
					"updatedAt":            "2025-06-07T08:09:10Z",
					"resourcePublications": map[string]interface{}{"edges": pubEdges(p.Pubs)},
				},
			})
		}
		hasNext := idx+1 < len(s.pages)
		endCursor := ""
		if hasNext {
			endCursor = fmt.Sprintf("page-%d", idx+1)
		}
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"products": map[string]interface{}{
			"edges":    edges,
			"pageInfo": map[string]interface{}{"hasNextPage": hasNext, "endCursor": endCursor},
		}}})

	case strings.Contains(q, "mutation publishablePublish"):
		id, _ := req.Variables["id"].(string)
		inputs, _ := req.Variables["input"].([]interface{})
		call := publishCall{ProductID: id}
		if len(inputs) > 0 {
			in, _ := inputs[0].(map[string]interface{})
			call.PublicationID, _ = in["publicationId"].(string)
			call.PublishDate, _ = in["publishDate"].(string)
		}
		s.publishCalls = append(s.publishCalls, call)

		if s.throttlePublish[id] > 0 {
			s.throttlePublish[id]--
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		if msg, ok := s.publishUserErrors[id]; ok {
			writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"publishablePublish": map[string]interface{}{
				"userErrors": []interface{}{map[string]interface{}{"field": []string{"id"}, "message": msg}},
			}}})
			return
		}
		if p := s.product(id); p != nil && !s.skipPublishState[id] {
			name := call.PublicationID
			for _, ch := range s.channels {
				if ch.ID == call.PublicationID {
					name = ch.Name
				}
			}
			p.Pubs = append(p.Pubs, fakePublication{ID: call.PublicationID, Name: name, Published: true})
		}
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"publishablePublish": map[string]interface{}{
			"publishable": map[string]interface{}{"availablePublicationsCount": map[string]interface{}{"count": 2}},
			"shop":        map[string]interface{}{"publicationCount": len(s.channels)},
			"userErrors":  []interface{}{},
		}}})

	case strings.Contains(q, "query getProductPublications"):
		id, _ := req.Variables["id"].(string)
		p := s.product(id)
		if p == nil {
			writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"product": nil}})
			return
		}
		writeJSON(w, map[string]interface{}{"data": map[string]interface{}{"product": map[string]interface{}{
			"id":                   p.ID,
			"title":                p.Title,
			"resourcePublications": map[string]interface{}{"edges": pubEdges(p.Pubs)},
		}}})

	default:
		http.Error(w, "unexpected query", http.StatusBadRequest)
	}
}

var (
	onlineStorePub = fakePublication{ID: "gid://shopify/Publication/1", Name: "Online Store", Published: true}
	hydrogenPub    = fakePublication{ID: "gid://shopify/Publication/2", Name: "Hydrogen Bubble Goods", Published: true}
	posPub         = fakePublication{ID: "gid://shopify/Publication/3", Name: "Point of Sale", Published: true}
)

func unpublished(p fakePublication) fakePublication {
	p.Published = false
	return p
}

func fastCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{PageSize: 2, MaxFetchRetries: 3}
}

func fastPublishConfig() config.PublishConfig {
	return config.PublishConfig{BatchSize: 3, VerifySample: 5}
}

func (s *fakeShop) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productRequests
}

func (s *fakeShop) times() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.productTimes...)
}

func (s *fakeShop) cursors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.afterCursors...)
}

func (s *fakeShop) calls() []publishCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]publishCall(nil), s.publishCalls...)
}

func (s *fakeShop) set(fn func(s *fakeShop)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}
