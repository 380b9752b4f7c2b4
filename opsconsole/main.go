package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/wastegate/wastegate/opsconsole/routes"
)

func main() {
	r := gin.Default()
	routes.RegisterConsoleRoutes(r)
	log.Println("Ops console running on :8081")
	_ = r.Run(":8081")
}
