package authhandlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Arcadelis/arcadis-scoring/internal/attr"
)

// verifyResponse is the token introspection payload.
type verifyResponse struct {
	Subject   string    `json:"subject"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

// HandleVerify introspects the bearer token on the request.
func (h *AuthHandlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleVerify")
	defer span.End()

	token := bearerToken(r)
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	claims, err := h.service.ValidateToken(ctx, token)
	if err != nil {
		h.logger.DebugContext(ctx, "Verify rejected token",
			attr.Error(err),
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(verifyResponse{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt,
		IssuedAt:  claims.IssuedAt,
	}); err != nil {
		h.logger.ErrorContext(ctx, "Failed to write verify response",
			attr.Error(err),
		)
	}
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
