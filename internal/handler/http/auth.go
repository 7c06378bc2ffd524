package http

import (
	"net/http"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterUser
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", registeredUser.ID).Msg("user registered")
	h.writeLoginResponse(w, r, registeredUser)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginUser
	if err := utils.DecodeJSON(r, &request); err != nil {
		log.Err(err).Msg(msgInvalidJSON)
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("id", foundUser.ID).Msg("user successfully logged in")
	h.writeLoginResponse(w, r, foundUser)
}

// writeLoginResponse issues a token for user, echoes it in the
// Authorization header and writes the token response with 200 OK.
func (h *Handler) writeLoginResponse(w http.ResponseWriter, r *http.Request, user models.User) {
	response, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+response.AccessToken)
	utils.WriteJSON(w, response, http.StatusOK)
}
