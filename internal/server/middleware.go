package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
)

const contextActorKey = "actor"

// AuthRequired resolves the session cookie into an Actor and stores it
// on the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		actor, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		c.Set(contextActorKey, *actor)
		c.Next()
	}
}

// authorize gates a route on the casbin policy for the actor's role.
func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (authdomain.Actor, bool) {
	value, exists := c.Get(contextActorKey)
	if !exists {
		return authdomain.Actor{}, false
	}
	actor, ok := value.(authdomain.Actor)
	return actor, ok
}
