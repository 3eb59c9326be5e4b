package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"media-planner/api/middleware"
	"media-planner/assetstore"
	"media-planner/dto"
	"media-planner/imaging"
	"media-planner/logger"
	"media-planner/models"
	"media-planner/services"
)

// ListPostsHandler returns the authenticated user's posts, newest scheduled
// first. Optional query: platform, skip, limit.
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)

		posts, err := svc.List(c.Request.Context(), user.ID, c.Query("platform"), skip, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// CreatePostHandler stores a new scheduled post.
func CreatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		var draft dto.PostDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		post, err := svc.Create(c.Request.Context(), user.ID, draft)
		if err != nil {
			respondPostError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler replaces the editable fields of an existing post.
func UpdatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		var draft dto.PostDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		post, err := svc.Update(c.Request.Context(), user.ID, c.Param("id"), draft)
		if err != nil {
			respondPostError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DeletePostHandler removes a post.
func DeletePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		if err := svc.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
			respondPostError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// SendNowHandler delivers a post immediately. A delivery failure still moves
// the post to its terminal failed status, so the error response carries the
// recorded message.
func SendNowHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		status, message, err := svc.SendNow(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrTerminal) {
				c.JSON(http.StatusConflict, gin.H{"error": "post already " + string(status)})
				return
			}
			respondPostError(c, err)
			return
		}

		if status == models.StatusFailed {
			c.JSON(http.StatusInternalServerError, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusOK, dto.SendNowResponse{Status: string(status), Message: "post published"})
	}
}

// CheckPendingHandler runs a catch-up pass over every due scheduled post.
func CheckPendingHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.CheckPending(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// UploadImageHandler combines up to three uploaded images into one JPEG and
// stores it in the asset store. The returned URL goes into the post draft.
func UploadImageHandler(uploader assetstore.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}

		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
			return
		}
		if len(files) > imaging.MaxSources {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at most 3 images per post"})
			return
		}

		sources := make([][]byte, 0, len(files))
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				continue
			}
			sources = append(sources, data)
		}

		combined, err := imaging.CombineAndResize(sources)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		url, err := uploader.Upload(c.Request.Context(), combined)
		if err != nil {
			logger.ErrorWithFields("asset store upload failed", logger.Fields{
				"platform": c.PostForm("platform"),
				"error":    err.Error(),
			})
			c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
			return
		}
		c.JSON(http.StatusOK, dto.UploadResponse{ImageURL: url})
	}
}

// respondPostError maps service errors onto the API error contract.
func respondPostError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
