package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"cardroom/internal/config"
	"cardroom/internal/database"
	"cardroom/internal/server"
)

func main() {
	log.Println("Starting card room dev server...")

	if err := config.LoadGameConfig(envOr("CARDROOM_RULES", "data/rules.json")); err != nil {
		log.Printf("Could not load game config: %v", err)
	}

	db, err := database.New(envOr("CARDROOM_DB", "./cardroom.db"))
	if err != nil {
		log.Fatalf("Failed to open results database: %v", err)
	}
	defer db.Close()

	hub := server.NewHub(db)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})

	fs := http.FileServer(http.Dir("web/static"))
	http.Handle("/", fs)

	server.HandleRoutes(db)

	addr := envOr("CARDROOM_ADDR", ":8080")
	log.Fatal(http.ListenAndServe(addr, nil))
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
