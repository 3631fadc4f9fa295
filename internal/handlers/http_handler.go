package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"phonebook/internal/models"
	"phonebook/internal/services"
	"phonebook/internal/utils"
)

type HTTPHandler struct {
	contacts *services.ContactService
	exports  *services.ExportService
	qrcodes  *services.QRCodeService
}

func NewHTTPHandler(contacts *services.ContactService, exports *services.ExportService) *HTTPHandler {
	return &HTTPHandler{
		contacts: contacts,
		exports:  exports,
		qrcodes:  services.NewQRCodeService(contacts),
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error, action string) {
	status, resp := ErrorResponse(err, action)
	if status >= http.StatusInternalServerError {
		utils.LogError("Failed to %s on %s: %v", action, r.URL.Path, err)
	} else {
		utils.LogDebug("Rejected %s on %s: %v", action, r.URL.Path, err)
	}
	models.RespondWithJSON(w, status, resp)
}

func decodeContact(r *http.Request) (*models.ContactRequest, error) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// @Summary List contacts
// @Description List every contact in the configured sort order
// @Tags contacts
// @Produce json
// @Success 200 {array} models.Contact
// @Failure 503 {object} models.APIResponse
// @Router /contacts [get]
func (h *HTTPHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		h.respondError(w, r, err, "fetch contacts")
		return
	}
	models.RespondWithData(w, http.StatusOK, contacts)
}

// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} models.Contact
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /contacts/{id} [get]
func (h *HTTPHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "fetch contact")
		return
	}
	models.RespondWithData(w, http.StatusOK, contact)
}

// @Summary Add a contact
// @Description Name and phone are required; the other fields default to empty
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Contact details"
// @Success 201 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /contacts [post]
func (h *HTTPHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	req, err := decodeContact(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body: "+err.Error()))
		return
	}

	contact, err := h.contacts.Create(r.Context(), req.Fields())
	if err != nil {
		h.respondError(w, r, err, "add contact")
		return
	}

	utils.LogInfo("Contact %d added", contact.ID)
	models.RespondWithJSON(w, http.StatusCreated, models.NewCreatedResponse("Contact added successfully", contact))
}

// @Summary Update a contact
// @Description Rewrites every field of the contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param request body models.ContactRequest true "Contact details"
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /contacts/{id} [put]
func (h *HTTPHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	req, err := decodeContact(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body: "+err.Error()))
		return
	}

	contact, err := h.contacts.Update(r.Context(), id, req.Fields())
	if err != nil {
		h.respondError(w, r, err, "update contact")
		return
	}

	utils.LogInfo("Contact %d updated", id)
	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Contact updated successfully", contact))
}

// @Summary Delete a contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /contacts/{id} [delete]
func (h *HTTPHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	if err := h.contacts.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err, "delete contact")
		return
	}

	utils.LogInfo("Contact %d deleted", id)
	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Contact deleted successfully", map[string]int64{"id": id}))
}

// @Summary Contact QR code
// @Description PNG QR code holding the contact as a vCard
// @Tags contacts
// @Produce png
// @Param id path int true "Contact ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.APIResponse
// @Router /contacts/{id}/qrcode [get]
func (h *HTTPHandler) ContactQRCode(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r)
	if err != nil {
		models.RespondWithJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
		return
	}

	png, err := h.qrcodes.PNG(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err, "render qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="contact-%d.png"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// @Summary Export contacts
// @Description Upload a snapshot of the contact list to S3
// @Tags contacts
// @Produce json
// @Param format query string false "json or vcf" default(json)
// @Success 200 {object} models.APIResponse
// @Failure 400 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /contacts/export [post]
func (h *HTTPHandler) ExportContacts(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	url, err := h.exports.Export(r.Context(), format)
	if err != nil {
		h.respondError(w, r, err, "export contacts")
		return
	}

	models.RespondWithJSON(w, http.StatusOK, models.NewSuccessResponse("Contacts exported successfully", map[string]string{"url": url}))
}

// Liveness always answers 200.
func (h *HTTPHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	models.RespondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness answers 503 while the backend cannot be reached.
func (h *HTTPHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.contacts.Ping(r.Context()); err != nil {
		utils.LogWarning("Readiness check failed: %v", err)
		models.RespondWithData(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	models.RespondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
}
