package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// DefaultActorID is recorded in audit fields when no actor header is present,
// e.g. for scheduled jobs or direct API calls.
const DefaultActorID = "system"

// ActorMiddleware records who is performing the request for audit trails.
// The upstream gateway authenticates and forwards the user ID in X-Actor-ID.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		if actorID == "" {
			actorID = DefaultActorID
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's ID from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return DefaultActorID
	}
	actorID, ok := actorVal.(string)
	if !ok || actorID == "" {
		return DefaultActorID
	}
	return actorID
}
