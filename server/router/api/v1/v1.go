// Package v1 exposes the REST API surface: authentication, moods,
// journals, nutrition, and the AI chat resource.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/Dilshanrad22/mind-case-backend/internal/profile"
	"github.com/Dilshanrad22/mind-case-backend/server/ai"
	"github.com/Dilshanrad22/mind-case-backend/server/auth"
	"github.com/Dilshanrad22/mind-case-backend/server/middleware"
	"github.com/Dilshanrad22/mind-case-backend/server/service/chat"
	"github.com/Dilshanrad22/mind-case-backend/store"
)

type APIV1Service struct {
	Secret      string
	Profile     *profile.Profile
	Store       *store.Store
	ChatService *chat.Service

	chatLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the REST services over the given store and
// completion gateway.
func NewAPIV1Service(secret string, profile *profile.Profile, st *store.Store, gateway ai.CompletionGateway) *APIV1Service {
	return &APIV1Service{
		Secret:      secret,
		Profile:     profile,
		Store:       st,
		ChatService: chat.NewService(st, gateway),
		// One completion call per second with a small burst is plenty for
		// an interactive chat and shields the upstream quota.
		chatLimiter: middleware.NewRateLimiter(1, 5),
	}
}

// Register mounts all routes under /api on the given echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", s.Signup)
	authGroup.POST("/login", s.Login)
	authGroup.GET("/profile", s.GetProfile, auth.Middleware(s.Secret))

	private := api.Group("", auth.Middleware(s.Secret))

	moods := private.Group("/moods")
	moods.POST("", s.CreateMood)
	moods.GET("", s.ListMoods)
	moods.GET("/stats", s.GetMoodStats)
	moods.GET("/:id", s.GetMood)
	moods.PUT("/:id", s.UpdateMood)
	moods.DELETE("/:id", s.DeleteMood)

	journals := private.Group("/journals")
	journals.POST("", s.CreateJournal)
	journals.GET("", s.ListJournals)
	journals.GET("/:id", s.GetJournal)
	journals.PUT("/:id", s.UpdateJournal)
	journals.DELETE("/:id", s.DeleteJournal)

	nutrition := private.Group("/nutrition")
	nutrition.POST("/food", s.AddFood)
	nutrition.GET("/today", s.GetTodayNutrition)
	nutrition.GET("/foods/today", s.GetTodayFoods)
	nutrition.GET("/weekly", s.GetWeeklyNutrition)
	nutrition.PUT("/steps", s.UpdateSteps)
	nutrition.DELETE("/food/:id", s.DeleteFood)

	chatGroup := private.Group("/chat", s.chatLimiter.PerUser())
	chatGroup.POST("/message", s.SendChatMessage)
	chatGroup.POST("/new", s.CreateNewChat)
	chatGroup.GET("", s.ListChats)
	chatGroup.GET("/:id", s.GetChatHistory)
	chatGroup.DELETE("/:id", s.DeleteChat)
	chatGroup.DELETE("/:id/messages", s.ClearChatMessages)
}
