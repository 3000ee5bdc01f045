package v1

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ServePage returns a handler serving one named HTML view from the
// web directory. Whether the route sits behind the page gate is the
// router's decision, not the page's.
func (h *handlerImpl) ServePage(name string) gin.HandlerFunc {
	path := filepath.Join(h.webDir, name)
	return func(c *gin.Context) {
		c.File(path)
	}
}
