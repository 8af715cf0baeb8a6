package main

import (
	"github.com/pixshare/photoshare/config"
	"github.com/pixshare/photoshare/models"
	"github.com/pixshare/photoshare/routes"
	"github.com/pixshare/photoshare/services"
	"github.com/pixshare/photoshare/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Post{},
		&models.Tag{},
		&models.Comment{},
		&models.PostRating{},
		&models.TransformedPost{},
		&models.BlacklistToken{},
	)

	host, err := services.NewCloudinaryHost(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		utils.Sugar.Fatalf("image host init failed: %v", err)
	}

	r := routes.SetupRouter(db, host)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
