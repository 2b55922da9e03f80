package redirect

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// Table is a concurrency-safe lookup of rules that can be swapped at runtime.
type Table struct {
	mu    sync.RWMutex
	rules map[string]string
}

func NewTable(rules []Rule) *Table {
	t := &Table{}
	t.Replace(rules)
	return t
}

func (t *Table) Replace(rules []Rule) {
	m := make(map[string]string, len(rules))
	for _, r := range rules {
		m[CleanPath(r.From)] = CleanPath(r.To)
	}
	t.mu.Lock()
	t.rules = m
	t.mu.Unlock()
}

func (t *Table) Lookup(path string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	to, ok := t.rules[CleanPath(path)]
	return to, ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rules)
}

// Middleware answers GET and HEAD requests for legacy paths with a 301,
// keeping the query string.
func Middleware(t *Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		to, ok := t.Lookup(c.Request.URL.Path)
		if !ok {
			c.Next()
			return
		}

		if q := c.Request.URL.RawQuery; q != "" {
			to += "?" + q
		}
		c.Redirect(http.StatusMovedPermanently, to)
		c.Abort()
	}
}
