package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
	"github.com/sanjeetk-dev/videograb-server/internal/usecase"
)

// FileResponse is the public view of one catalog record. The media handle
// stays internal; consumers reach the video through the share link.
type FileResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	CreatedAt    string `json:"createdAt"`
	ShareURL     string `json:"shareUrl"`
}

// ListFilesResponse is the paginated listing body.
type ListFilesResponse struct {
	Success    bool           `json:"success"`
	Page       int            `json:"page"`
	PerPage    int            `json:"perPage"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
	Data       []FileResponse `json:"data"`
}

// FilesHandler serves the paginated catalog listing.
type FilesHandler struct {
	svc         usecase.ListingService
	botUsername string
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(svc usecase.ListingService, botUsername string) *FilesHandler {
	return &FilesHandler{svc: svc, botUsername: botUsername}
}

// List handles GET /files?page=<n>.
// Non-numeric or non-positive page values default to 1, never a rejection.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	snapshot, err := h.svc.ListPage(r.Context(), page)
	if err != nil {
		Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	JSON(w, http.StatusOK, h.toListResponse(snapshot))
}

func (h *FilesHandler) toListResponse(snapshot *model.CatalogPage) ListFilesResponse {
	data := make([]FileResponse, 0, len(snapshot.Items))
	for _, record := range snapshot.Items {
		data = append(data, FileResponse{
			ID:           record.ID.String(),
			Title:        record.Title,
			ThumbnailURL: record.ThumbnailURL,
			CreatedAt:    record.CreatedAt.Format(time.RFC3339),
			ShareURL:     fmt.Sprintf("https://t.me/%s?start=video_%s", h.botUsername, record.ID),
		})
	}

	return ListFilesResponse{
		Success:    true,
		Page:       snapshot.Page,
		PerPage:    snapshot.PerPage,
		Total:      snapshot.Total,
		TotalPages: snapshot.TotalPages,
		Data:       data,
	}
}

// parsePage normalizes the raw query value to an integer >= 1.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
