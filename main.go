package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskmasters/internal/db"
	"taskmasters/internal/handlers"
	"taskmasters/internal/middleware"
	"taskmasters/internal/observability"
	"taskmasters/internal/rabbitmq"
	"taskmasters/internal/repositories"
	"taskmasters/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	publisher := rabbitmq.NewPublisher(os.Getenv("AMQP_URL"), getEnv("AMQP_EXCHANGE", "taskmasters.events"))
	defer publisher.Close()

	audit := telemetry.NewAuditEmitter(publisher, "audit.taskmasters", "taskmasters", getEnv("ENVIRONMENT", "dev"))

	userRepo := repositories.NewUserRepo(database)
	friendRepo := repositories.NewFriendRepo(database)
	requestRepo := repositories.NewRequestRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	taskRepo := repositories.NewTaskRepo(database)

	friendHandler := handlers.NewFriendHandler(friendRepo, publisher, audit)
	requestHandler := handlers.NewRequestHandler(requestRepo, friendRepo, userRepo, publisher, audit)
	messageHandler := handlers.NewMessageHandler(messageRepo, friendRepo, publisher, audit)
	userHandler := handlers.NewUserHandler(userRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo, friendRepo, publisher, audit)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(getEnv("JWT_SECRET", "dev-secret"))

	router.GET("/friends/:user_id", authMiddleware, friendHandler.ListFriends)
	router.DELETE("/friends/:user_id/:friend_id", authMiddleware, friendHandler.RemoveFriend)

	router.GET("/requests/incoming/:user_id", authMiddleware, requestHandler.ListIncoming)
	router.GET("/requests/outgoing/:user_id", authMiddleware, requestHandler.ListOutgoing)
	router.POST("/requests", authMiddleware, requestHandler.CreateRequest)
	router.POST("/requests/:request_id/accept", authMiddleware, requestHandler.AcceptRequest)
	router.POST("/requests/:request_id/decline", authMiddleware, requestHandler.DeclineRequest)

	router.GET("/users/search", authMiddleware, userHandler.SearchUsers)

	router.GET("/messages", authMiddleware, messageHandler.ListMessages)
	router.POST("/messages", authMiddleware, messageHandler.PostMessage)

	router.GET("/tasks/shared/:user_id", authMiddleware, taskHandler.ListSharedTasks)
	router.GET("/tasks/:user_id", authMiddleware, taskHandler.ListTasks)
	router.POST("/tasks/:user_id", authMiddleware, taskHandler.CreateTask)
	router.PUT("/tasks/:user_id/:task_id", authMiddleware, taskHandler.UpdateTask)
	router.DELETE("/tasks/:user_id/:task_id", authMiddleware, taskHandler.DeleteTask)
	router.POST("/tasks/:user_id/:task_id/share", authMiddleware, taskHandler.ShareTask)

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
