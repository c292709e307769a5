package handlers

import (
	"log"
	"net/http"

	"github.com/senyabanana/marketplace-service/internal/utils"
)

// RootHandler обрабатывает GET запрос к / (liveness)
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if err := utils.SendJSON(w, http.StatusOK, map[string]string{"server": "marketplace server is running..."}); err != nil {
		log.Println(err)
	}
}
