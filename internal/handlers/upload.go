package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"omoide-api/internal/errors"
	"omoide-api/internal/models"
)

// parseMultipartMemory bounds how much of the form is buffered in memory;
// larger parts spill to temp files.
const parseMultipartMemory = 32 << 20

func (h *Handler) BatchUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(parseMultipartMemory); err != nil {
		writeError(w, fmt.Errorf("%w: invalid multipart form: %v", errors.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, fmt.Errorf("%w: no files provided", errors.ErrInvalidInput))
		return
	}

	files := make([]models.UploadFile, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			writeError(w, fmt.Errorf("%w: failed to open uploaded file %s: %v", errors.ErrInvalidInput, header.Filename, err))
			return
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			writeError(w, fmt.Errorf("%w: failed to read uploaded file %s: %v", errors.ErrInvalidInput, header.Filename, err))
			return
		}

		files = append(files, models.UploadFile{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	log.Printf("[Handler] Batch upload of %d files", len(files))

	result, err := h.upload.ProcessBatch(r.Context(), files)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
