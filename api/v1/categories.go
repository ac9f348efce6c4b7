package v1

import (
	"net/http"

	"techgear/internal/catalog/domain"
)

type renameCategoryRequest struct {
	NewID *domain.CategoryID `json:"newId"`
}

// RenameCategory handler pour PUT /categories/{oldId}
func (h *Handlers) RenameCategory(w http.ResponseWriter, r *http.Request) {
	oldID, ok := pathID(w, r, "oldId")
	if !ok {
		return
	}

	var req renameCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NewID == nil {
		writeMessage(w, http.StatusBadRequest, "newId is required")
		return
	}

	changes, err := h.categories.Rename(r.Context(), domain.CategoryID(oldID), *req.NewID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Category updated",
		"changes": changes,
	})
}
