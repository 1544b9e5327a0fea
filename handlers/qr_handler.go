package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"contapf-server/repository"
	"contapf-server/services"
)

type QRHandler struct {
	repo      *repository.AccountRepository
	qrService *services.AccountQRService
}

func NewQRHandler(repo *repository.AccountRepository, qrService *services.AccountQRService) *QRHandler {
	return &QRHandler{
		repo:      repo,
		qrService: qrService,
	}
}

func (h *QRHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	account, err := h.repo.GetByID(id)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.qrService.Describe(account))
}

func (h *QRHandler) GetQRCodeImage(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}

	account, err := h.repo.GetByID(id)
	if err != nil {
		writeRepositoryError(w, r, err)
		return
	}

	size := 0
	if sizeParam := r.URL.Query().Get("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil || size < 0 || size > 2048 {
			http.Error(w, "Invalid size parameter", http.StatusBadRequest)
			return
		}
	}

	data, err := h.qrService.PNG(account, size)
	if err != nil {
		log.WithContext(r.Context()).Errorf("QR code for account %d: %v", account.ID, err)
		http.Error(w, "Failed to generate QR code", http.StatusBadRequest)
		return
	}

	// Set headers for image download
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"qr-account-%d.png\"", account.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))

	if _, err := w.Write(data); err != nil {
		log.WithContext(r.Context()).Debugf("Writing QR image: %v", err)
	}
}
