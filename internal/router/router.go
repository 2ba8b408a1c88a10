package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	likeHandler *handler.LikeHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/most-liked", postHandler.MostLiked)
	api.GET("/posts/:id", postHandler.GetPost)
	api.GET("/users/:id", userHandler.GetUser)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), rejectBlacklisted(tokenStore))

	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateMe)
	secured.PUT("/me/password", userHandler.UpdatePassword)
	secured.DELETE("/me", userHandler.DeleteMe)

	secured.POST("/posts", postHandler.CreatePost)
	secured.PUT("/posts/:id", postHandler.UpdatePost)
	secured.DELETE("/posts/:id", postHandler.DeletePost)
	secured.PUT("/posts/:id/schedule", postHandler.SchedulePost)

	secured.POST("/posts/:id/like", likeHandler.ToggleLike)
	secured.DELETE("/likes/:id", likeHandler.RemoveLike)
}

// rejectBlacklisted blocks access tokens revoked by logout. Runs after the
// JWT middleware has verified the signature.
func rejectBlacklisted(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims, ok := token.Claims.(*auth.Claims); ok && claims.ID != "" {
				blacklisted, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if blacklisted {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
