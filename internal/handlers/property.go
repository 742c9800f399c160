package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/listing"
	"spacia-portal/internal/middleware"
	"spacia-portal/internal/models"
	"spacia-portal/internal/services"
	"spacia-portal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Multipart field names of POST /api/properties.
const (
	formFieldProperty = "property"
	formFieldImages   = "images"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
	maxMemory       int64
}

func NewPropertyHandler(propertyService *services.PropertyService, maxMemory int64) *PropertyHandler {
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	return &PropertyHandler{propertyService: propertyService, maxMemory: maxMemory}
}

// MasterData returns the form option lists. A failed load still answers 200 with empty lists and a banner.
func (h *PropertyHandler) MasterData(c *gin.Context) {
	c.JSON(http.StatusOK, h.propertyService.MasterData(c.Request.Context()))
}

// ListProperties returns every property filtered by ?location= and ?propertyType=.
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	var filter listing.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(apperrors.NewValidationError(map[string]string{"query": err.Error()}))
		return
	}

	view, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		h.renderWithError(c, err, gin.H{"properties": view.Properties, "filter": view.Filter})
		return
	}
	c.JSON(http.StatusOK, view)
}

// MyProperties returns the signed-in user's listings.
func (h *PropertyHandler) MyProperties(c *gin.Context) {
	view, err := h.propertyService.Mine(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.renderWithError(c, err, gin.H{"properties": view.Properties()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": view.Properties()})
}

// PropertyDetails renders the record passed in the navigation state body. Nothing is fetched.
func (h *PropertyHandler) PropertyDetails(c *gin.Context) {
	var state models.NavigationState
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&state); err != nil {
			_ = c.Error(apperrors.NewValidationError(map[string]string{"body": err.Error()}))
			return
		}
	}

	property, err := h.propertyService.Detail(state)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property": property})
}

// EditProperty loads the update form, from the navigation state body when present.
func (h *PropertyHandler) EditProperty(c *gin.Context) {
	var state *models.NavigationState
	if c.Request.ContentLength != 0 {
		state = &models.NavigationState{}
		if err := c.ShouldBindJSON(state); err != nil {
			_ = c.Error(apperrors.NewValidationError(map[string]string{"body": err.Error()}))
			return
		}
	}

	view, err := h.propertyService.EditView(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), state)
	if err != nil {
		h.renderWithError(c, err, gin.H{"view": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": view})
}

// CreateProperty accepts multipart {property: JSON draft, images: files...} or a bare JSON draft.
// The submission keeps running if the client disconnects.
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	draft, files, err := h.readCreateRequest(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.propertyService.Create(ctx, middleware.CurrentSession(c), draft, files)
	if err != nil {
		h.renderWithError(c, err, gin.H{"submission": result})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submission": result})
}

func (h *PropertyHandler) readCreateRequest(c *gin.Context) (models.PropertyDraft, []models.PendingFile, error) {
	var draft models.PropertyDraft
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&draft); err != nil {
			return draft, nil, apperrors.NewValidationError(map[string]string{"body": err.Error()})
		}
		return draft, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return draft, nil, apperrors.NewValidationError(map[string]string{"body": err.Error()})
	}
	raw := form.Value[formFieldProperty]
	if len(raw) == 0 {
		return draft, nil, apperrors.NewValidationError(map[string]string{formFieldProperty: "is required"})
	}
	if err := json.Unmarshal([]byte(raw[0]), &draft); err != nil {
		return draft, nil, apperrors.NewValidationError(map[string]string{formFieldProperty: err.Error()})
	}

	selector := h.propertyService.Selector()
	var files []models.PendingFile
	for _, header := range form.File[formFieldImages] {
		file, err := selector.FromMultipart(header)
		if err != nil {
			return draft, nil, apperrors.NewValidationError(map[string]string{formFieldImages: err.Error()})
		}
		files = append(files, file)
	}
	return draft, files, nil
}

// UpdateProperty replaces the property with the JSON draft in the body.
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	var draft models.PropertyDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		_ = c.Error(apperrors.NewValidationError(map[string]string{"body": err.Error()}))
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	result, err := h.propertyService.Update(ctx, middleware.CurrentSession(c), c.Param("id"), draft)
	if err != nil {
		h.renderWithError(c, err, gin.H{"submission": result})
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": result})
}

// DeleteProperty removes one of the user's listings.
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	if err := h.propertyService.Delete(c.Request.Context(), middleware.CurrentSession(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ContactOwner asks the owner to get in touch. Anonymous callers get a login redirect.
func (h *PropertyHandler) ContactOwner(c *gin.Context) {
	result, err := h.propertyService.Contact(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if result.Redirect != "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    gin.H{"message": apperrors.MsgLoginRequired, "code": apperrors.ErrCodeUnauthorized},
			"redirect": result.Redirect,
			"from":     result.From,
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// renderWithError writes the error banner alongside a partial view.
func (h *PropertyHandler) renderWithError(c *gin.Context, err error, body gin.H) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.MapError(err)
	}
	logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, kind=%s, error=%s",
		c.Request.URL.Path, c.Request.Method, appErr.Kind, appErr.TechnicalMessage)
	body["error"] = middleware.ErrorBody(appErr)
	c.JSON(appErr.HTTPStatus, body)
}
