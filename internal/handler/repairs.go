package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transfleet/internal/domain"
	"transfleet/internal/middleware"
	"transfleet/internal/service"
)

// RepairHandler handles HTTP requests for vehicle repair requests.
type RepairHandler struct {
	repairService *service.RepairService
}

// NewRepairHandler creates a new RepairHandler.
func NewRepairHandler(repairService *service.RepairService) *RepairHandler {
	return &RepairHandler{repairService: repairService}
}

// Create handles POST /v1/repairs
//
// Multipart form: "description", "repairType" (numeric), and optional
// "images" files.
func (h *RepairHandler) Create(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	repairType, err := strconv.Atoi(c.PostForm("repairType"))
	if err != nil {
		respondError(c, service.ErrInvalidRepairType)
		return
	}

	files, err := openIncoming(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image upload"})
		return
	}
	defer closeIncoming(files)

	err = h.repairService.Create(c.Request.Context(), session, service.CreateRepairInput{
		Description: c.PostForm("description"),
		RepairType:  domain.RepairType(repairType),
		Images:      incomingImages(files),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, gin.H{"status": "created"})
}

// List handles GET /v1/repairs
func (h *RepairHandler) List(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	repairs, err := h.repairService.List(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"repairs": repairs})
}

// Delete handles DELETE /v1/repairs/:id
func (h *RepairHandler) Delete(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthenticated)
		return
	}

	if err := h.repairService.Delete(c.Request.Context(), session, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"status": "deleted"})
}
