package routes

import (
	"github.com/gorilla/mux"

	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
	"blogapi/internal/services"
)

func InitRoutes(
	router *mux.Router,
	tokenHandler *handlers.TokenHandler,
	articleHandler *handlers.ResourceHandler,
	postHandler *handlers.ResourceHandler,
	authService *services.AuthService,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", tokenHandler.Register).Methods("POST")
	api.HandleFunc("/tokens", tokenHandler.IssueToken).Methods("POST")

	api.HandleFunc("/articles", articleHandler.List).Methods("GET")
	api.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Get).Methods("GET")
	api.HandleFunc("/posts", postHandler.List).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postHandler.Get).Methods("GET")

	// --- Защищённые токеном ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.TokenAuth(authService))

	protected.HandleFunc("/profile/api-key", tokenHandler.RotateAPIKey).Methods("POST")

	// Мутирующие операции требуют роль api (как ROLE_API в исходной модели).
	writers := protected.PathPrefix("").Subrouter()
	writers.Use(middleware.OnlyRole(services.RoleAPI))

	writers.HandleFunc("/articles/preview", articleHandler.Preview).Methods("POST")
	writers.HandleFunc("/articles", articleHandler.Create).Methods("POST")
	writers.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Put).Methods("PUT")
	writers.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Patch).Methods("PATCH")
	writers.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Delete).Methods("DELETE")

	writers.HandleFunc("/posts", postHandler.Create).Methods("POST")
	writers.HandleFunc("/posts/{id:[0-9]+}", postHandler.Put).Methods("PUT")
	writers.HandleFunc("/posts/{id:[0-9]+}", postHandler.Patch).Methods("PATCH")
	writers.HandleFunc("/posts/{id:[0-9]+}", postHandler.Delete).Methods("DELETE")
}
