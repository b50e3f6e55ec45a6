package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"authapp/internal/auth"
	"authapp/internal/config"
	"authapp/internal/handler"
	appmw "authapp/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	chatHandler *handler.ChatHandler,
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

	// Public auth routes, rate limited per IP.
	limiter := appmw.NewRateLimiter(rate.Limit(5), 10)
	authGroup := api.Group("/auth", limiter.Middleware())
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/signin", authHandler.Signin)
	authGroup.GET("/verify-email", authHandler.VerifyEmail)
	authGroup.POST("/resend-verification", authHandler.ResendVerification)
	authGroup.GET("/check-email", authHandler.CheckEmail)
	authGroup.GET("/:provider", authHandler.OAuthRedirect)
	authGroup.GET("/:provider/callback", authHandler.OAuthCallback)

	// Secured routes (require a valid session token).
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/user/details", userHandler.GetDetails)
	secured.POST("/user/details", userHandler.UpdateDetails)
	secured.POST("/upload", userHandler.Upload)

	secured.POST("/posts", postHandler.Create)
	secured.GET("/posts", postHandler.List)
	secured.GET("/posts/latest", postHandler.Latest)

	secured.POST("/chat", chatHandler.Chat)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
