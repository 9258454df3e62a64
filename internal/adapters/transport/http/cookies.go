package http

import (
	"net/http"

	"github.com/avelorn/auth-service/internal/domain/auth/model"
	"github.com/avelorn/auth-service/internal/infra/config"
	"github.com/gin-gonic/gin"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// CookieConfig carries the process-wide cookie options. It is built once at
// startup and shared read-only by every response that sets tokens.
type CookieConfig struct {
	Domain string
	Secure bool
}

func NewCookieConfig(cfg *config.Config) CookieConfig {
	return CookieConfig{
		Domain: cfg.CookieDomain,
		Secure: cfg.IsProduction(),
	}
}

func (cc CookieConfig) setTokens(c *gin.Context, pair model.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, pair.AccessToken,
		int(pair.AccessTTL.Seconds()), "/", cc.Domain, cc.Secure, true)
	c.SetCookie(refreshTokenCookie, pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()), "/", cc.Domain, cc.Secure, true)
}

func (cc CookieConfig) clearTokens(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessTokenCookie, "", -1, "/", cc.Domain, cc.Secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", cc.Domain, cc.Secure, true)
}
