package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bitmark-inc/immunity-api/external/cadence"
	"github.com/bitmark-inc/immunity-api/logmodule"
	"github.com/bitmark-inc/immunity-api/metrics"
	"github.com/bitmark-inc/immunity-api/store"
	"github.com/bitmark-inc/immunity-api/validity"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store      store.ImmunityCore
	mongoStore store.MongoStore

	// Validity engine
	evaluator *validity.Evaluator

	// Background workflows
	cadenceClient cadence.WorkflowClient

	// Prometheus
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// NewServer new instance of server
func NewServer(
	ormDB *gorm.DB,
	mongoClient *mongo.Client,
	cadenceClient cadence.WorkflowClient) *Server {
	immunityStore := store.NewImmunityStore(ormDB)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	return &Server{
		store:         immunityStore,
		mongoStore:    store.NewMongoStore(mongoClient, viper.GetString("mongo.database")),
		evaluator:     validity.NewEvaluator(immunityStore, viper.GetInt("validity.workers")),
		cadenceClient: cadenceClient,
		registry:      registry,
		metrics:       metrics.New(registry),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.admin")))
	{
		apiRoute.GET("/validity", s.allValidity)
	}

	personRoute := apiRoute.Group("/persons/:personID")
	{
		personRoute.GET("/validity", s.personValidity)
		personRoute.GET("/validity/snapshot", s.personValiditySnapshot)
		personRoute.POST("/validity/refresh", s.refreshPersonValidity)
		personRoute.GET("/protection", s.personProtection)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("", s.prometheusMetrics)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
