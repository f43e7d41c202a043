package app

import (
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handlers"
	"blogapi/internal/repository"
	"blogapi/internal/routes"
	"blogapi/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}
	// Репозитории. Статьи удаляются мягко (метка deleted_at),
	// посты — физически; это единственное различие между видами.
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewResourceRepo(conn, "articles", true)
	postRepo := repository.NewResourceRepo(conn, "posts", false)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	articleSvc := services.NewResourceService(articleRepo, "article")
	postSvc := services.NewResourceService(postRepo, "post")

	// Хендлеры
	tokenHandler := handlers.NewTokenHandler(authService)
	articleHandler := handlers.NewResourceHandler(articleSvc, "article", "/api/articles")
	postHandler := handlers.NewResourceHandler(postSvc, "post", "/api/posts")

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, tokenHandler, articleHandler, postHandler, authService)

	return router, nil
}
