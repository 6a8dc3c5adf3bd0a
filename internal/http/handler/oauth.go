package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ansa.app/bridge/internal/service"
	"ansa.app/bridge/internal/store"
)

type OAuthHandler struct {
	oauth       service.OAuthService
	users       store.UserStore
	completeURL string
}

func NewOAuthHandler(oauth service.OAuthService, users store.UserStore, completeURL string) *OAuthHandler {
	return &OAuthHandler{
		oauth:       oauth,
		users:       users,
		completeURL: completeURL,
	}
}

// Callback finishes the Slack install flow. The request must identify an
// account by API token; on success the browser is sent to the completion
// page.
func (h *OAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "api token required"})
		return
	}

	user, err := h.users.GetByAPIToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api token"})
			return
		}
		slog.ErrorContext(ctx, "failed to resolve user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	if _, err := h.oauth.Complete(ctx, user, code); err != nil {
		if errors.Is(err, service.ErrInvalidOAuthResponse) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid response from slack"})
			return
		}
		slog.ErrorContext(ctx, "oauth completion failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete oauth"})
		return
	}

	c.Redirect(http.StatusFound, h.completeURL)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return c.Query("token")
}
