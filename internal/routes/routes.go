package routes

import (
	"github.com/Harikowshik052/investment-deal-pipeline/internal/handler"
	"github.com/Harikowshik052/investment-deal-pipeline/internal/middleware"
	"github.com/Harikowshik052/investment-deal-pipeline/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	boardHandler *handler.BoardHandler,
	dealHandler *handler.DealHandler,
	memoHandler *handler.MemoHandler,
	interactionHandler *handler.InteractionHandler,
	userHandler *handler.UserHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	authed := api.Group("", middleware.JWTAuth(jwtManager))

	// User directory for mention autocomplete and member management
	authed.GET("/users", userHandler.ListUsers)

	// Boards and membership
	boards := authed.Group("/boards")
	{
		boards.GET("", boardHandler.ListBoards)
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("/:board_id", boardHandler.GetBoard)
		boards.PUT("/:board_id", boardHandler.UpdateBoard)
		boards.DELETE("/:board_id", boardHandler.DeleteBoard)
		boards.GET("/:board_id/activity", boardHandler.BoardActivity)

		members := boards.Group("/:board_id/members")
		members.PUT("/:user_id", boardHandler.AddMember)
		members.DELETE("/:user_id", boardHandler.RemoveMember)
	}

	// Deals and their sub-resources
	deals := authed.Group("/deals")
	{
		deals.GET("", dealHandler.ListDeals)
		deals.POST("", dealHandler.CreateDeal)
		deals.GET("/:deal_id", dealHandler.GetDeal)
		deals.PATCH("/:deal_id", dealHandler.UpdateDeal)
		deals.DELETE("/:deal_id", dealHandler.DeleteDeal)
		deals.GET("/:deal_id/activity", dealHandler.DealActivity)

		memo := deals.Group("/:deal_id/memo")
		memo.GET("", memoHandler.GetMemo)
		memo.PUT("", memoHandler.SaveMemo)
		memo.GET("/versions", memoHandler.ListMemoVersions)
		memo.GET("/versions/:version", memoHandler.GetMemoVersion)

		comments := deals.Group("/:deal_id/comments")
		comments.GET("", interactionHandler.ListComments)
		comments.POST("", interactionHandler.CreateComment)

		votes := deals.Group("/:deal_id/votes")
		votes.GET("", interactionHandler.ListVotes)
		votes.POST("", interactionHandler.CastVote)
	}

	// Live board feed over WebSocket
	router.GET("/ws/boards/:board_id", middleware.JWTAuth(jwtManager), wsHandler.Connect)
}
