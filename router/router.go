// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/en18031/conformity/controller"
	"github.com/en18031/conformity/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))
	router.Use(middleware.UserContext())

	api := router.Group("/api/v1")

	controllers.Project.RegisterRoutes(api)
	controllers.Assessment.RegisterRoutes(api)
	controllers.Evidence.RegisterRoutes(api)
	controllers.Catalog.RegisterRoutes(api)
	controllers.Session.RegisterRoutes(api)
	controllers.Transfer.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)

	return router
}
