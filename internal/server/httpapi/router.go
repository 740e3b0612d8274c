package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/Adam9898/pw-manager-backend/internal/logging"
	"github.com/Adam9898/pw-manager-backend/internal/server/models"
)

// NewRouter builds the gin engine with the full route table. Public user
// routes run the token refresher only; vault routes require an
// authenticated regular account; administrative broadcast additionally
// requires the admin role.
func NewRouter(h *Handler, tokens TokenManager, subjects SubjectResolver, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	guard := AuthGuard(tokens, subjects, logger)
	refresher := JWTRefresher(tokens, logger)

	usersGroup := r.Group("/users", refresher)
	{
		usersGroup.POST("", h.Register)
		usersGroup.POST("/check-email", h.CheckEmail)
		usersGroup.POST("/login", h.Login)
	}

	secretsGroup := r.Group("/secrets", guard, RequireRole(models.RoleRegular))
	{
		secretsGroup.POST("", h.CreateSecret)
		secretsGroup.GET("", h.ListSecrets)
		secretsGroup.GET("/:secretId", h.GetSecret)
		secretsGroup.PUT("", h.UpdateSecret)
		secretsGroup.DELETE("/:secretId", h.DeleteSecret)
	}

	notificationsGroup := r.Group("/notifications", guard)
	{
		notificationsGroup.GET("/subscribe", h.SubscribeNotifications)
		notificationsGroup.POST("/send", RequireRole(models.RoleAdmin), h.SendNotification)
	}

	return r
}
