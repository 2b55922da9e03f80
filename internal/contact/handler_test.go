package contact

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func router(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/contact", NewHandler(logger).Submit)
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmit_LogsAndSucceeds(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := router(zap.New(core))

	w := postJSON(r, `{"name":"Sam","email":"sam@example.com","message":"Please add Bavel"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	entries := logs.FilterMessage("[CONTACT] submission received").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "sam@example.com", entries[0].ContextMap()["email"])
	}
}

func TestSubmit_FormEncoded(t *testing.T) {
	form := url.Values{"name": {"Sam"}, "email": {"sam@example.com"}, "message": {"hi"}}
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmit_Validation(t *testing.T) {
	r := router(nil)

	for name, body := range map[string]string{
		"missing name":  `{"email":"sam@example.com","message":"hi"}`,
		"bad email":     `{"name":"Sam","email":"sam","message":"hi"}`,
		"blank message": `{"name":"Sam","email":"sam@example.com","message":"   "}`,
		"too long":      `{"name":"Sam","email":"sam@example.com","message":"` + strings.Repeat("x", 5001) + `"}`,
		"not json":      `{`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, postJSON(r, body).Code)
		})
	}
}
