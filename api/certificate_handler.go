package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type certificateHandler struct {
	responder      Responder
	logger         zerolog.Logger
	service        *services.CertificateService
	maxUploadBytes int64
}

func newCertificateHandler(service *services.CertificateService, maxUploadBytes int64) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// listCertificates returns every certificate with its images
// @Summary List certificates
// @Tags Certificates
// @Produce json
// @Success 200 {array} models.Certificate
// @Router /api/certificates [get]
func (h certificateHandler) listCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificates, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, certificates)
	}
}

// createCertificate creates a certificate without images
// @Summary Create certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param certificate body services.CertificateInput true "Certificate data"
// @Success 201 {object} models.Certificate
// @Failure 400 {object} ErrorResponse "Title missing or issue date invalid"
// @Router /api/certificates [post]
func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CertificateInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		certificate, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, certificate)
	}
}

// uploadImages stores every file of the multipart field "files". Files stored
// before a failure stay attached to the certificate.
// @Summary Upload certificate images
// @Tags Certificates
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Certificate ID" format(uuid)
// @Param files formData file true "Images"
// @Success 200 {object} models.Certificate
// @Failure 400 {object} ErrorResponse "No files or an empty file"
// @Failure 404 {object} ErrorResponse
// @Router /api/certificates/{id}/upload-images [post]
func (h certificateHandler) uploadImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := parseMultipart(w, r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer removeMultipart(r)

		uploads, closeUploads, err := openUploads(r, "files")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer closeUploads()

		certificate, err := h.service.UploadImages(r.Context(), id, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, certificate)
	}
}

// deleteCertificate deletes a certificate with its images
// @Summary Delete certificate
// @Tags Certificates
// @Param id path string true "Certificate ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/certificates/{id} [delete]
func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
