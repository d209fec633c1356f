package server

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"cardroom/internal/database"
)

// HandleRoutes registers the read-only results API.
func HandleRoutes(db *database.Service) {
	http.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		GetResultsHandler(db, w, r)
	})
	log.Println("Registered route: /api/results")

	http.HandleFunc("/api/results/game/{game}", func(w http.ResponseWriter, r *http.Request) {
		GetResultsByGameHandler(db, w, r)
	})
	log.Println("Registered route: /api/results/game/{game}")
}

func GetResultsHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	results, err := db.GetAll()
	if err != nil {
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func GetResultsByGameHandler(db *database.Service, w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")
	if game == "" {
		http.Error(w, "Game kind is required", http.StatusBadRequest)
		return
	}

	results, err := db.GetByGame(game)
	if err != nil {
		if err == sql.ErrNoRows {
			http.Error(w, "No results found for game", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}
