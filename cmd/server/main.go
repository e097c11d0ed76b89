package main

import (
	"log"

	"github.com/DuDupedrosa/memory-game-api/internal/config"
	"github.com/DuDupedrosa/memory-game-api/internal/database"
	"github.com/DuDupedrosa/memory-game-api/internal/game"
	"github.com/DuDupedrosa/memory-game-api/internal/handlers"
	"github.com/DuDupedrosa/memory-game-api/internal/middleware"
	"github.com/DuDupedrosa/memory-game-api/internal/registry"
	"github.com/DuDupedrosa/memory-game-api/internal/services"
	"github.com/DuDupedrosa/memory-game-api/internal/ws"

	_ "github.com/DuDupedrosa/memory-game-api/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Memory Game API
// @version         1.0
// @description     Two-player realtime memory game: accounts, rooms and the websocket game channel
// @host            localhost:3000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	reg := registry.New()

	authService := services.NewAuthService(cfg.JWTSecret)
	userService := services.NewUserService(db, authService)
	roomService := services.NewRoomService(db, userService)
	gameStore := services.NewGameStore(db)

	coordinator := game.NewCoordinator(reg, gameStore, hub)

	userHandler := handlers.NewUserHandler(userService)
	roomHandler := handlers.NewRoomHandler(roomService)
	wsHandler := handlers.NewWSHandler(hub, coordinator)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleGameSocket)

	api := r.Group("/api/v1")
	{
		user := api.Group("/user")
		{
			user.POST("", userHandler.Register)
			user.POST("/sign-in", userHandler.SignIn)

			authed := user.Group("")
			authed.Use(middleware.JWTAuth(authService))
			{
				authed.GET("", userHandler.GetData)
				authed.PUT("", userHandler.UpdateProfile)
				authed.PATCH("/change-password", userHandler.ChangePassword)
			}
		}

		room := api.Group("/room")
		room.Use(middleware.JWTAuth(authService))
		{
			room.POST("", roomHandler.CreateRoom)
			room.POST("/sign-in", roomHandler.SignInRoom)
			room.GET("/data/:id", roomHandler.GetRoomData)
			room.GET("/:id/users", roomHandler.GetRoomUsers)
			room.GET("/:id/player-allowed-to-play", roomHandler.GetPlayerAllowedToPlay)
			room.PATCH("/changed-player-allowed-to-play", roomHandler.ChangeAllowedToPlay)
			room.GET("/owner-access-recent", roomHandler.GetRecentRooms)
			room.GET("/get-all", roomHandler.GetAllRooms)
			room.PATCH("/change-password", roomHandler.UpdatePassword)
			room.PATCH("/change-level", roomHandler.UpdateLevel)
			room.DELETE("/:id", roomHandler.DeleteRoom)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
