package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/stlgaming/lottery-api/docs"
	v1 "github.com/stlgaming/lottery-api/internal/api/handler/v1"
	"github.com/stlgaming/lottery-api/internal/api/middleware"
	"github.com/stlgaming/lottery-api/internal/config"
	"github.com/stlgaming/lottery-api/internal/repository"
	"github.com/stlgaming/lottery-api/internal/repository/dao"
	"github.com/stlgaming/lottery-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, limits service.LimitPolicy) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	drawHandler := s.initDrawHandler(db)
	ticketHandler := s.initTicketHandler(db, limits)
	agentHandler := s.initAgentHandler(db)
	s.MountHandlers(drawHandler, ticketHandler, agentHandler)

	return s
}

func (s *Server) initDrawHandler(db *gorm.DB) *v1.DrawHandler {
	drawRepo := repository.NewDrawRepository(dao.NewDrawDAO(db))
	limitRepo := repository.NewBetLimitRepository(dao.NewBetLimitDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	prizeRepo := repository.NewPrizeConfigurationRepository(dao.NewPrizeConfigurationDAO(db))
	winnerRepo := repository.NewWinningTicketRepository(dao.NewWinningTicketDAO(db))

	svc := service.NewDrawService(drawRepo, limitRepo)
	settleSvc := service.NewSettlementService(drawRepo, ticketRepo, prizeRepo, winnerRepo)

	return v1.NewDrawHandler(svc, settleSvc)
}

func (s *Server) initTicketHandler(db *gorm.DB, limits service.LimitPolicy) *v1.TicketHandler {
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	drawRepo := repository.NewDrawRepository(dao.NewDrawDAO(db))

	svc := service.NewTicketService(ticketRepo, drawRepo, limits)

	return v1.NewTicketHandler(svc)
}

func (s *Server) initAgentHandler(db *gorm.DB) *v1.AgentHandler {
	repo := repository.NewAgentRepository(dao.NewAgentDAO(db))
	svc := service.NewAgentService(repo)

	return v1.NewAgentHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(drawHandler *v1.DrawHandler, ticketHandler *v1.TicketHandler, agentHandler *v1.AgentHandler) {
	const basePath = "/api/v1"

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.POST("/tickets", ticketHandler.HandleSubmitTicket)
		authed.GET("/tickets/:serial", ticketHandler.HandleGetTicket)

		authed.GET("/draws", drawHandler.HandleListDraws)
		authed.GET("/draws/:drawID", drawHandler.HandleGetDraw)
		authed.GET("/draws/:drawID/limits", drawHandler.HandleExposureBoard)
		authed.GET("/draws/:drawID/winners", drawHandler.HandleListWinners)
		authed.POST("/draws/:drawID/close", drawHandler.HandleCloseDraw)
		authed.POST("/draws/:drawID/result", drawHandler.HandleRecordResult)
		authed.POST("/draws/:drawID/settle", drawHandler.HandleSettleDraw)

		authed.GET("/agents/:agentID", agentHandler.HandleGetAgent)
		authed.GET("/agents/:agentID/team", agentHandler.HandleListTeam)
	}

	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "STL Lottery API"
	docs.SwaggerInfo.Description = "Draw lifecycle, ticket acceptance and settlement."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
