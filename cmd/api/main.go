package main

import (
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := LoadConfiguration()
	gin.SetMode(cfg.Server.Mode)

	app := NewApp(cfg)
	defer app.cleanup()

	app.InitializeServer()
	app.StartServer()
}
