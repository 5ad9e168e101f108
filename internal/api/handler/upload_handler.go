package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staysmart/hospitality-platform/internal/core/ports"
)

// UploadHandler receives licence documents and hands them to the document
// store. The returned reference is meant to be submitted in a subsequent
// property registration.
type UploadHandler struct {
	store ports.DocumentStore
}

func NewUploadHandler(store ports.DocumentStore) *UploadHandler {
	return &UploadHandler{store: store}
}

type uploadResponse struct {
	Ref string `json:"ref"`
}

// UploadLicence handles POST /v1/uploads/licence (multipart form, field "file").
//
// @Summary      Upload a licence document
// @Tags         properties
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Licence document"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/uploads/licence [post]
func (h *UploadHandler) UploadLicence(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	ref, err := h.store.Save(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{Ref: ref})
}
