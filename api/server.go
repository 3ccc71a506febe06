package api

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/evseew/PEcoinDashboard-Backend/app"
	"github.com/evseew/PEcoinDashboard-Backend/models"
)

const ServerName = "HTTP SERVER"

// Server exposes the mint API over HTTP and plugs into the service
// lifecycle like every other component.
type Server struct {
	fiberApp *fiber.App
	port     int64
	wg       *sync.WaitGroup
	logger   *log.Entry
}

func NewServer(handler *Handler, wg *sync.WaitGroup) *Server {
	fiberApp := fiber.New(fiber.Config{
		AppName:               "PEcoin Mint Backend",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New())
	handler.RegisterRoutes(fiberApp)

	return &Server{
		fiberApp: fiberApp,
		port:     app.Config.HTTPServer.Port,
		wg:       wg,
		logger:   log.WithField("module", "api"),
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
}

// Start serves until Stop shuts the listener down.
func (s *Server) Start() {
	s.logger.Infof("[HTTP SERVER] listening on :%d", s.port)
	if err := s.fiberApp.Listen(fmt.Sprintf(":%d", s.port)); err != nil {
		s.logger.WithError(err).Error("[HTTP SERVER] listener stopped")
	}
	s.logger.Info("[HTTP SERVER] stopped")
	s.wg.Done()
}

func (s *Server) Health() models.ServiceHealth {
	return models.ServiceHealth{
		Name:         ServerName,
		LastSyncTime: time.Now(),
		NextSyncTime: time.Now(),
		Healthy:      true,
	}
}

func (s *Server) Stop() {
	if err := s.fiberApp.Shutdown(); err != nil {
		s.logger.WithError(err).Error("[HTTP SERVER] shutdown failed")
	}
}
