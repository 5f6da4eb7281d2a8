package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// artifactInfo is one entry of the artifact listing.
type artifactInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listArtifacts returns the flat files currently in the output directory.
func (h *Handler) listArtifacts(c *gin.Context) {
	entries, err := os.ReadDir(h.artifactDir)
	if err != nil {
		h.log.Errorw("list artifacts", "dir", h.artifactDir, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "artifact directory unavailable"})
		return
	}

	infos := make([]artifactInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, artifactInfo{
			Name:     e.Name(),
			Size:     fi.Size(),
			Modified: fi.ModTime().UTC(),
		})
	}
	c.JSON(http.StatusOK, infos)
}

// getArtifact serves one artifact file by name. Names with path separators
// are rejected so the handler cannot read outside the output directory.
func (h *Handler) getArtifact(c *gin.Context) {
	name := c.Param("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact name"})
		return
	}

	path := filepath.Join(h.artifactDir, name)
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
		return
	}

	if strings.HasSuffix(name, ".csv") {
		c.Header("Content-Type", "text/csv")
	}
	c.File(path)
}
