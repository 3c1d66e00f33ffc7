package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCallerIdentity_HeaderPresent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var caller string
	var found bool
	router.GET("/probe", CallerIdentity(), func(c *gin.Context) {
		caller, found = callerFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(CallerHeader, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.True(t, found)
	assert.Equal(t, "alice", caller)
}

func TestCallerIdentity_HeaderAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var found bool
	router.GET("/probe", CallerIdentity(), func(c *gin.Context) {
		_, found = callerFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.False(t, found)
}

func TestCallerIdentity_EmptyHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var found bool
	router.GET("/probe", CallerIdentity(), func(c *gin.Context) {
		_, found = callerFromContext(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(CallerHeader, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.False(t, found)
}
