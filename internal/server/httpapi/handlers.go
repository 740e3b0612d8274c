// Package httpapi exposes the server's HTTP surface: the gin router, the
// access-control middleware and the JSON/SSE handlers. Handlers depend on
// narrow service interfaces so they can be tested against fakes.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam9898/pw-manager-backend/internal/common"
	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// UserService is the slice of the account service the handlers consume.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

// SecretService is the slice of the vault service the handlers consume.
type SecretService interface {
	Create(ctx context.Context, ownerID string, secret *models.Secret) (*models.Secret, error)
	Get(ctx context.Context, ownerID, secretID string) (*models.Secret, error)
	Update(ctx context.Context, ownerID string, secret *models.Secret) error
	Delete(ctx context.Context, ownerID, secretID string) error
	ListSummaries(ctx context.Context, ownerID string) ([]*models.SecretSummary, error)
}

// NotificationBus is the fanout the notification handlers consume.
type NotificationBus interface {
	Subscribe(ctx context.Context) (<-chan *models.Notification, string)
	Publish(ctx context.Context, n *models.Notification) error
}

// Handler bundles the request handlers with their collaborators.
type Handler struct {
	users   UserService
	secrets SecretService
	bus     NotificationBus
	logger  logging.Logger
}

// NewHandler constructs the handler set.
func NewHandler(users UserService, secrets SecretService, bus NotificationBus, logger logging.Logger) *Handler {
	return &Handler{
		users:   users,
		secrets: secrets,
		bus:     bus,
		logger:  logger.With("module", "httpapi"),
	}
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error(c.Request.Context(), "request failed", "op", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// Register handles POST /users.
func (h *Handler) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, token, err := h.users.Register(c.Request.Context(), payload.Email, payload.Password)
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.internalError(c, "register", err)
	default:
		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token})
	}
}

// CheckEmail handles POST /users/check-email, the registration-form
// uniqueness probe.
func (h *Handler) CheckEmail(c *gin.Context) {
	var payload checkEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available, err := h.users.EmailAvailable(c.Request.Context(), payload.Email)
	if err != nil {
		h.internalError(c, "check_email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": available})
}

// Login handles POST /users/login. A failed login is a 200 with
// success=false; the response never distinguishes unknown email from wrong
// password.
func (h *Handler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	token, err := h.users.Login(c.Request.Context(), payload.Email, payload.Password)
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusOK, gin.H{"success": false})
	case err != nil:
		h.internalError(c, "login", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}

// CreateSecret handles POST /secrets.
func (h *Handler) CreateSecret(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var secret models.Secret
	if err := c.ShouldBindJSON(&secret); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.secrets.Create(c.Request.Context(), user.ID, &secret)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.internalError(c, "create_secret", err)
	default:
		c.JSON(http.StatusCreated, created)
	}
}

// ListSecrets handles GET /secrets. The response carries summaries only;
// usernames and passwords never appear in the listing.
func (h *Handler) ListSecrets(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	summaries, err := h.secrets.ListSummaries(c.Request.Context(), user.ID)
	if err != nil {
		h.internalError(c, "list_secrets", err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSecret handles GET /secrets/:secretId. A secret that does not exist
// and a secret owned by someone else produce the same generic 500.
func (h *Handler) GetSecret(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	secret, err := h.secrets.Get(c.Request.Context(), user.ID, c.Param("secretId"))
	if err != nil {
		h.internalError(c, "get_secret", err)
		return
	}
	c.JSON(http.StatusOK, secret)
}

// UpdateSecret handles PUT /secrets: a full replace of the record matching
// the payload's id within the caller's vault.
func (h *Handler) UpdateSecret(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var secret models.Secret
	if err := c.ShouldBindJSON(&secret); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.secrets.Update(c.Request.Context(), user.ID, &secret)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.internalError(c, "update_secret", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteSecret handles DELETE /secrets/:secretId.
func (h *Handler) DeleteSecret(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	if err := h.secrets.Delete(c.Request.Context(), user.ID, c.Param("secretId")); err != nil {
		h.internalError(c, "delete_secret", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendNotification handles POST /notifications/send. The sender email is
// always the authenticated admin's account email; the payload cannot spoof
// it.
func (h *Handler) SendNotification(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		unauthorized(c)
		return
	}

	var payload notificationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n := &models.Notification{
		AdminEmail:  user.Email,
		Title:       payload.Title,
		Description: payload.Description,
	}
	err := h.bus.Publish(c.Request.Context(), n)
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.internalError(c, "send_notification", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
