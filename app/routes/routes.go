package routes

import (
	"database/sql"
	"log/slog"
	"net/http"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
)

// Setup wires repositories, services, middleware and controllers onto a
// router. sqlDB holds users, posts and comments; kv holds sessions.
func Setup(cfg *config.Config, sqlDB *sql.DB, kv *badger.DB, logger *slog.Logger) *mux.Router {
	userRepo := repositories.NewSQLUserRepository(sqlDB)
	postRepo := repositories.NewSQLPostRepository(sqlDB)
	commentRepo := repositories.NewSQLCommentRepository(sqlDB)
	sessionRepo := repositories.NewBadgerSessionRepository(kv)

	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, cfg.Sessions.TTL)
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	cookies := securecookie.New([]byte(cfg.Sessions.Secret), nil)
	auth := middleware.NewAuth(sessionService, userService, cookies)

	base := controllers.NewBase(cfg.Views.Dir, cookies, logger)
	postController := controllers.NewPostController(postService, commentService, base)
	authController := controllers.NewAuthController(userService, sessionService, auth, base)
	pageController := controllers.NewPageController(base)
	apiController := controllers.NewAPIController(postService, base)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(auth.Authenticate)

	// Serve static files
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Views.StaticDir))))

	// Public web routes
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/post/{id:[0-9]+}", postController.AddComment).Methods("POST")
	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/contact", pageController.Contact).Methods("GET")

	// Admin-gated post mutations
	router.Handle("/new-post", middleware.RequireAdmin(http.HandlerFunc(postController.New))).Methods("GET")
	router.Handle("/new-post", middleware.RequireAdmin(http.HandlerFunc(postController.Create))).Methods("POST")
	router.Handle("/edit-post/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(postController.Edit))).Methods("GET")
	router.Handle("/edit-post/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(postController.Update))).Methods("POST")
	router.Handle("/delete/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(postController.Delete))).Methods("GET")

	// JSON API
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", apiController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", apiController.Show).Methods("GET")
	api.Handle("/posts", middleware.RequireAdmin(http.HandlerFunc(apiController.Create))).Methods("POST")
	api.Handle("/posts/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(apiController.Update))).Methods("PUT")
	api.Handle("/posts/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(apiController.Delete))).Methods("DELETE")

	return router
}
