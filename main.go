package main

import (
	"log"
	"strings"
	"time"

	"tracker/auth"
	"tracker/config"
	"tracker/db"
	"tracker/handlers"
	"tracker/models"
	"tracker/storage"
	"tracker/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 30 * 86400 // 30 days
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/preview-files", "/pictures", "/events"})))
	}
	router.Use(utils.NoCacheByDefault) // Artifact end-points override this

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// Identity handlers
	router.POST("/auth/login", handlers.PersonLogin)
	authRouter.POST("/auth/logout", handlers.PersonLogout)
	authRouter.GET("/auth/authenticated", handlers.PersonAuthenticated)
	authRouter.POST("/persons", handlers.PersonCreate, models.RoleAdmin)
	authRouter.GET("/persons", handlers.PersonList)
	// Casting graph
	authRouter.GET("/casting/:shot_id", handlers.CastingGet)
	authRouter.PUT("/casting/:shot_id", handlers.CastingUpdate)
	// Preview artifacts
	authRouter.POST("/tasks/:task_id/preview-files", handlers.PreviewFileCreate)
	authRouter.POST("/preview-files/:instance_id/picture", handlers.PreviewUpload)
	authRouter.GET("/preview-files/:instance_id/:variant", handlers.PreviewFetch) // Permission checks are done inside the handler
	authRouter.PUT("/entities/:entity_id/preview-files/:preview_file_id", handlers.MainPreviewSet, models.RoleManager)
	// Per-kind thumbnails
	authRouter.POST("/pictures/thumbnails/:kind/:instance_id", handlers.ThumbnailCreate)
	authRouter.GET("/pictures/thumbnails/:kind/:file", handlers.ThumbnailFetch)
	// Realtime event feed
	authRouter.GET("/events", handlers.EventsSocket)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
