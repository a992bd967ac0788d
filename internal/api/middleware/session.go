package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/crm-api/internal/api/metrics"
	"github.com/agencydesk/crm-api/internal/core/access"
	"github.com/agencydesk/crm-api/internal/core/domain"
	"github.com/agencydesk/crm-api/internal/core/ports"
	"github.com/agencydesk/crm-api/internal/core/session"
)

// Context keys populated by the Session middleware.
const (
	CtxSessionState = "session_state"
	CtxSessionStore = "session_store"
	CtxSessionID    = "session_id"
	CtxIdentity     = "identity"
)

// revocationTTL bounds how long a revoked session id is remembered. It
// matches the longest token lifetime the API issues.
const revocationTTL = 24 * time.Hour

// Session authenticates the request. A bearer token is verified, its
// session store is fetched (or created) from the manager, and the resolved
// state is placed in the request context. Requests without a valid token
// proceed with an unauthenticated state; the access middleware decides
// what that means per route.
func Session(auth ports.AuthService, revoker ports.SessionRevoker, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				c.Set(CtxSessionState, access.SessionState{})
				return next(c)
			}

			sessionID, claims, err := auth.Verify(c.Request().Context(), token)
			if err != nil {
				c.Set(CtxSessionState, access.SessionState{})
				return next(c)
			}

			store := sessions.GetOrCreate(sessionID,
				func(ctx context.Context) (*domain.Identity, error) {
					revoked, err := revoker.IsRevoked(ctx, sessionID)
					if err != nil {
						return nil, err
					}
					if revoked {
						return nil, nil
					}
					return claims, nil
				},
				func(ctx context.Context) error {
					return revoker.Revoke(ctx, sessionID, revocationTTL)
				},
			)

			state := store.Resolve(c.Request().Context())
			metrics.ActiveSessions.Set(float64(sessions.Len()))

			c.Set(CtxSessionStore, store)
			c.Set(CtxSessionID, sessionID)
			c.Set(CtxSessionState, access.SessionState{Resolving: state.Resolving, Identity: state.Identity})
			if state.Identity != nil {
				c.Set(CtxIdentity, state.Identity)
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
