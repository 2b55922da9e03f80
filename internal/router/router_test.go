package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"datenight/internal/auth"
	"datenight/internal/contact"
	"datenight/internal/featured"
	"datenight/internal/insights"
	"datenight/internal/redirect"
	"datenight/internal/restaurant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := restaurant.NewMemoryRepository([]*restaurant.Restaurant{
		{ID: "1", Name: "Bestia", Slug: "bestia", Neighborhood: "Arts District", NeighborhoodSlug: "arts-district",
			CuisineTypes: []string{"Italian"}, DateNightScore: 93, IsActive: true},
		{ID: "2", Name: "Gjelina", Slug: "gjelina", Neighborhood: "Venice", NeighborhoodSlug: "venice",
			CuisineTypes: []string{"Californian"}, DateNightScore: 88, IsActive: true},
	})

	service := restaurant.NewService(repo, nil)
	return NewRouter(Deps{
		Restaurants: restaurant.NewHandler(service, nil),
		Insights:    insights.NewHandler(insights.NewService(service, nil)),
		Featured:    featured.NewHandler(featured.NewMemoryStore(), nil),
		Contact:     contact.NewHandler(nil),
		Redirects:   redirect.NewTable([]redirect.Rule{{From: "/restaurant/bestia", To: "/restaurants/arts-district/bestia"}}),
		JWTSecret:   secret,
		CORSOrigins: []string{"http://localhost:4321"},
	})
}

func serve(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := serve(newTestRouter(), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRestaurantRoutes(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/api/restaurants", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Restaurants []restaurant.Restaurant `json:"restaurants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Restaurants, 2)
	assert.Equal(t, "Bestia", body.Restaurants[0].Name)

	w = serve(r, http.MethodGet, "/api/filter-restaurants?neighborhood=venice", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []restaurant.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "Gjelina", filtered[0].Name)

	w = serve(r, http.MethodGet, "/api/restaurants/venice/gjelina", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/restaurants/venice/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLegacyRedirect(t *testing.T) {
	w := serve(newTestRouter(), http.MethodGet, "/restaurant/bestia", "", "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/restaurants/arts-district/bestia", w.Header().Get("Location"))
}

func TestFeaturedRequiresAdmin(t *testing.T) {
	r := newTestRouter()
	body := `{"id":"1","featured":true}`

	w := serve(r, http.MethodPost, "/api/featured-restaurants", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateToken(secret, "ops", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	w = serve(r, http.MethodPost, "/api/featured-restaurants", body, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/featured-restaurants", "", "")
	assert.JSONEq(t, `{"featured":["1"]}`, w.Body.String())

	w = serve(r, http.MethodGet, "/api/admin/me", "", token)
	assert.JSONEq(t, `{"subject":"ops","role":"ADMIN"}`, w.Body.String())
}

func TestInsightsRoute(t *testing.T) {
	// two restaurants is below the reporting threshold
	w := serve(newTestRouter(), http.MethodGet, "/api/insights", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no data available")
}

func TestContactRoute(t *testing.T) {
	w := serve(newTestRouter(), http.MethodPost, "/api/contact", `{"name":"A","email":"a@b.co","message":"hi"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnmountedNewsletter(t *testing.T) {
	w := serve(newTestRouter(), http.MethodPost, "/api/subscribe", `{"email":"a@b.co"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
