package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestHealthz(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newTestServer(ctl)
	s.core.EXPECT().Ping().Return(nil).Times(1)
	s.mongo.EXPECT().Ping().Return(nil).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthz", s.healthz)

	w := serve(router, "GET", "/healthz")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}

func TestHealthzDatabaseDown(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newTestServer(ctl)
	s.core.EXPECT().Ping().Return(errors.New("connection refused")).Times(1)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthz", s.healthz)

	w := serve(router, "GET", "/healthz")
	assertErrorCode(t, w, http.StatusInternalServerError, 999)
}

func TestApikeyAuthentication(t *testing.T) {
	s := Server{}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(s.apikeyAuthentication("secret"))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, "GET", "/")
	assertErrorCode(t, w, http.StatusForbidden, 1000)

	req := newRequestWithToken("wrong")
	w = serveRequest(router, req)
	assertErrorCode(t, w, http.StatusForbidden, 1000)

	req = newRequestWithToken("secret")
	w = serveRequest(router, req)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
}
