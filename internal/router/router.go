package router

import (
	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/handler"
)

// New configures the Gin engine and mounts the REST surface.
func New(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	categories := r.Group("/categories")
	{
		categories.POST("", api.CreateCategory)
		categories.GET("", api.GetCategories)
		categories.PUT("/:id", api.UpdateCategory)
		categories.DELETE("/:id", api.DeleteCategory)

		categories.POST("/tags", api.CreateTag)
		categories.GET("/tags", api.GetTags)
		categories.DELETE("/tags/:id", api.DeleteTag)
	}

	pages := r.Group("/pages")
	{
		pages.POST("", api.CreatePage)
		pages.GET("", api.GetPages)
		pages.POST("/reorder", api.ReorderPages)
		pages.GET("/by-slug/:slug", api.GetPageBySlug)
		pages.GET("/:id", api.GetPage)
		pages.PUT("/:id", api.UpdatePage)
		pages.DELETE("/:id", api.DeletePage)
	}

	posts := r.Group("/posts")
	{
		posts.POST("", api.CreatePost)
		posts.GET("", api.GetPosts)
		posts.GET("/by-slug/:slug", api.GetPostBySlug)
		posts.GET("/:id", api.GetPost)
		posts.PUT("/:id", api.UpdatePost)
		posts.DELETE("/:id", api.DeletePost)
	}

	subscribers := r.Group("/subscribers")
	{
		subscribers.POST("", api.CreateSubscriber)
		subscribers.GET("", api.GetSubscribers)
		subscribers.GET("/stats", api.GetSubscriberStats)
		subscribers.POST("/unsubscribe", api.Unsubscribe)
		subscribers.DELETE("/:id", api.DeleteSubscriber)

		campaigns := subscribers.Group("/campaigns")
		{
			campaigns.POST("", api.CreateCampaign)
			campaigns.GET("", api.GetCampaigns)
			campaigns.GET("/stats", api.GetCampaignStats)
			campaigns.GET("/:id", api.GetCampaign)
			campaigns.POST("/:id/send", api.SendCampaign)
			campaigns.DELETE("/:id", api.DeleteCampaign)
		}
	}

	r.POST("/ai/generate", api.GenerateContent)

	return r
}
