// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-ald/benefit-bank/internal/benefitdelivery"
	"github.com/go-ald/benefit-bank/internal/benefitrepo"
	"github.com/go-ald/benefit-bank/internal/benefitservice"
	"github.com/go-ald/benefit-bank/internal/middleware"
	"github.com/go-ald/benefit-bank/internal/transferdelivery"
	"github.com/go-ald/benefit-bank/internal/transferservice"
	"github.com/go-ald/benefit-bank/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	benefitRepo := benefitrepo.NewRepoPGS(conn)

	benefitService := benefitservice.New(benefitRepo)
	transferService := transferservice.New(benefitRepo, config)

	benefitHandler := benefitdelivery.NewHandler(benefitService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/benefits", benefitHandler.List)
	engine.GET("/benefits/active", benefitHandler.ListActive)
	engine.GET("/benefits/:id", benefitHandler.Get)
	engine.POST("/benefits", benefitHandler.Create)
	engine.PUT("/benefits/:id", benefitHandler.Update)
	engine.DELETE("/benefits/:id", benefitHandler.Delete)

	engine.POST("/benefits/transfer", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", transferdelivery.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
