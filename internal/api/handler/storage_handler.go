package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinemyst/onboarding-service/internal/core/domain"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// publicBuckets are the buckets whose objects may be read without a session.
var publicBuckets = map[string]struct{}{
	domain.BucketProfilePictures: {},
}

// StorageHandler serves stored objects at their public URLs.
type StorageHandler struct {
	storage ports.ObjectStorage
}

func NewStorageHandler(storage ports.ObjectStorage) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// Get streams the object at /storage/:bucket/<path>.
//
// @Summary      Download object
// @Tags         storage
// @Produce      octet-stream
// @Param        bucket  path  string  true  "Bucket"
// @Param        path    path  string  true  "Object path"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /storage/{bucket}/{path} [get]
func (h *StorageHandler) Get(c echo.Context) error {
	bucket := c.Param("bucket")
	path := strings.TrimPrefix(c.Param("*"), "/")
	if _, ok := publicBuckets[bucket]; !ok || path == "" {
		return echo.NewHTTPError(http.StatusNotFound, "object not found")
	}

	obj, err := h.storage.Download(c.Request().Context(), bucket, path)
	if err != nil {
		return err
	}
	if obj.CacheControl != "" {
		c.Response().Header().Set("Cache-Control", obj.CacheControl)
	}
	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, obj.Data)
}
