package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"dailyjournal/auth"
	"dailyjournal/middleware"
	"dailyjournal/pages"
	"dailyjournal/posts"
	"dailyjournal/ratelim"
	"dailyjournal/session"
)

func AddPageRoutes(router *httprouter.Router) {
	router.GET("/", pages.Landing)
	router.GET("/login", pages.LoginForm)
	router.GET("/register", pages.RegisterForm)
	router.GET("/about", pages.About)
	router.GET("/contact", pages.Contact)
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/register", rl.Limit(h.Register))
	router.POST("/login", rl.Limit(h.Login))
	router.GET("/logout", h.Logout)
	router.GET("/auth/google", h.GoogleStart)
	router.GET("/auth/google/dailyjournal", h.GoogleCallback)
}

func AddPostRoutes(router *httprouter.Router, h *posts.Handler, mgr *session.Manager) {
	router.GET("/home", middleware.RequireAuth(mgr, h.Home))
	router.GET("/seeall", middleware.RequireAuth(mgr, h.SeeAll))
	router.GET("/compose", middleware.RequireAuth(mgr, h.ComposeForm))
	router.POST("/compose", middleware.RequireAuth(mgr, h.Compose))
	router.POST("/delete", middleware.RequireAuth(mgr, h.Delete))
	router.GET("/export", middleware.RequireAuth(mgr, h.Export))

	// Detail pages are reachable without a session; see the handler.
	router.GET("/posts/:postid", middleware.OptionalAuth(mgr, h.GetPost))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
}
