package authhandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	authservice "github.com/Arcadelis/arcadis-scoring/app/modules/auth/application"
	"github.com/Arcadelis/arcadis-scoring/internal/attr"
)

// oauthError is the RFC 6749 error payload.
type oauthError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HandleToken implements the OAuth2 client-credentials grant. Credentials
// arrive via HTTP basic auth or form fields; the optional subject form field
// names the identity the token is minted for.
func (h *AuthHandlers) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleToken")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}

	if grant := r.PostFormValue("grant_type"); grant != "client_credentials" {
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", "only client_credentials is supported")
		return
	}

	clientID, clientSecret, ok := r.BasicAuth()
	if !ok {
		clientID = r.PostFormValue("client_id")
		clientSecret = r.PostFormValue("client_secret")
	}
	if clientID == "" || clientSecret == "" {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "missing client credentials")
		return
	}

	subject := r.PostFormValue("subject")

	token, err := h.service.IssueToken(ctx, clientID, clientSecret, subject)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidClient) {
			writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "client authentication failed")
			return
		}
		h.logger.ErrorContext(ctx, "Token issuance failed",
			attr.Error(err),
		)
		writeOAuthError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(token); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write token response",
			attr.Error(err),
		)
	}
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(oauthError{
		Error:            code,
		ErrorDescription: description,
	})
}
