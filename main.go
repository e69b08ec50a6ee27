package main

import (
	"github.com/Thaththathirian/lifeboat-admin-sub000/config"
	"github.com/Thaththathirian/lifeboat-admin-sub000/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
