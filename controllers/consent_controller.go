package controllers

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-backend/services"
)

const sessionKeyName = "sid"

// ConsentController exposes the public, write-only cookie-consent endpoint.
type ConsentController struct {
	Service *services.ConsentLogService
}

func NewConsentController(service *services.ConsentLogService) *ConsentController {
	return &ConsentController{Service: service}
}

type consentPayload struct {
	Analytics bool `json:"analytics"`
}

// LogCookieConsent handles POST /api/log-cookie-consent. Every call
// appends one audit row; nothing is deduplicated.
func (ctl *ConsentController) LogCookieConsent(c *gin.Context) {
	var payload consentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	_, err := ctl.Service.Record(services.ConsentRecord{
		Analytics:  payload.Analytics,
		IPAddress:  clientIP(c),
		SessionKey: sessionKey(c),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// clientIP prefers the first entry of X-Forwarded-For, falling back to the
// direct connection address.
func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// sessionKey reads the visitor's session identifier, minting one the first
// time so repeated decisions from one browser correlate.
func sessionKey(c *gin.Context) string {
	session := sessions.Default(c)
	if existing, ok := session.Get(sessionKeyName).(string); ok && existing != "" {
		return existing
	}
	key := uuid.NewString()
	session.Set(sessionKeyName, key)
	if err := session.Save(); err != nil {
		log.Printf("warning: failed to save session: %v", err)
	}
	return key
}
