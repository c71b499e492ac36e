package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transfleet/internal/domain"
	"transfleet/internal/middleware"
	"transfleet/internal/service"
)

// Image sources accepted by the submission image endpoint.
const (
	imageSourceGallery = "gallery"
	imageSourceCamera  = "camera"
)

// OrderHandler handles HTTP requests for orders and their status
// submissions.
type OrderHandler struct {
	orderService  *service.OrderService
	statusService *service.StatusService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService, statusService *service.StatusService) *OrderHandler {
	return &OrderHandler{orderService: orderService, statusService: statusService}
}

// BeginSubmissionRequest is the HTTP request body for opening a
// submission. Status is the order's current status as the device last
// saw it.
type BeginSubmissionRequest struct {
	Status int `json:"status"`
}

// SetNoteRequest is the HTTP request body for setting the note.
type SetNoteRequest struct {
	Note string `json:"note"`
}

// ListOrders handles GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	filter := domain.OrderFilterAll
	if raw := c.Query("filter"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, service.ErrInvalidFilter)
			return
		}
		filter = parsed
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), session, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"orders": orders})
}

// ListStatuses handles GET /v1/statuses/:kind
func (h *OrderHandler) ListStatuses(c *gin.Context) {
	spec, ok := domain.Registry(domain.OrderKind(c.Param("kind")))
	if !ok {
		respondError(c, service.ErrInvalidOrderKind)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{
		"kind":     spec.Kind,
		"statuses": spec.Statuses,
		"terminal": spec.Terminal,
	})
}

// BeginSubmission handles POST /v1/orders/:kind/:id/submission
func (h *OrderHandler) BeginSubmission(c *gin.Context) {
	var req BeginSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.statusService.Begin(domain.OrderKind(c.Param("kind")), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, view)
}

// GetSubmission handles GET /v1/orders/:kind/:id/submission
func (h *OrderHandler) GetSubmission(c *gin.Context) {
	view, err := h.statusService.Get(domain.OrderKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// SetNote handles PUT /v1/orders/:kind/:id/submission/note
func (h *OrderHandler) SetNote(c *gin.Context) {
	var req SetNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.statusService.SetNote(domain.OrderKind(c.Param("kind")), c.Param("id"), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// AttachImages handles POST /v1/orders/:kind/:id/submission/images
//
// Multipart form: "source" is gallery or camera, "images" carries the
// files. A camera capture is exactly one file.
func (h *OrderHandler) AttachImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	files, err := openIncoming(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image upload"})
		return
	}
	defer closeIncoming(files)

	kind := domain.OrderKind(c.Param("kind"))
	orderID := c.Param("id")

	var view *service.SubmissionView
	switch c.PostForm("source") {
	case imageSourceGallery:
		view, err = h.statusService.AttachFromGallery(kind, orderID, incomingImages(files))
	case imageSourceCamera:
		if len(files) != 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "camera capture must be a single image"})
			return
		}
		view, err = h.statusService.AttachFromCamera(kind, orderID, incomingImages(files)[0])
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "source must be gallery or camera"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// RemoveImage handles DELETE /v1/orders/:kind/:id/submission/images/:imageID
func (h *OrderHandler) RemoveImage(c *gin.Context) {
	view, err := h.statusService.RemoveImage(domain.OrderKind(c.Param("kind")), c.Param("id"), c.Param("imageID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// CancelSubmission handles DELETE /v1/orders/:kind/:id/submission
func (h *OrderHandler) CancelSubmission(c *gin.Context) {
	if err := h.statusService.Cancel(domain.OrderKind(c.Param("kind")), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "cancelled"})
}

// Submit handles POST /v1/orders/:kind/:id/submission/submit
func (h *OrderHandler) Submit(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	view, err := h.statusService.Submit(c.Request.Context(), session, domain.OrderKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, view)
}

// openedFile pairs a multipart header with its opened stream.
type openedFile struct {
	name string
	file multipart.File
}

func openIncoming(headers []*multipart.FileHeader) ([]openedFile, error) {
	files := make([]openedFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeIncoming(files)
			return nil, err
		}
		files = append(files, openedFile{name: header.Filename, file: f})
	}
	return files, nil
}

func closeIncoming(files []openedFile) {
	for _, f := range files {
		_ = f.file.Close()
	}
}

func incomingImages(files []openedFile) []service.IncomingImage {
	images := make([]service.IncomingImage, 0, len(files))
	for _, f := range files {
		images = append(images, service.IncomingImage{Name: f.name, Data: f.file})
	}
	return images
}
