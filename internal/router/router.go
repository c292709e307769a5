package router

import (
	"net/http"

	"github.com/senyabanana/marketplace-service/internal/auth"
	"github.com/senyabanana/marketplace-service/internal/handlers"
)

func InitRoutes(jobHandler *handlers.JobHandler, bidHandler *handlers.BidHandler, authHandler *handlers.AuthHandler, authMW *auth.Middleware) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handlers.RootHandler)

	mux.HandleFunc("POST /jwt", authHandler.IssueToken)
	mux.HandleFunc("GET /logoutWithCookies", authHandler.Logout)

	mux.HandleFunc("POST /add-job", jobHandler.CreateJob)
	mux.HandleFunc("GET /jobs", jobHandler.GetJobs)
	mux.Handle("GET /jobs/{email}", authMW.RequireToken(http.HandlerFunc(jobHandler.GetBuyerJobs)))
	mux.HandleFunc("GET /job/{id}", jobHandler.GetJob)
	mux.HandleFunc("PUT /update-job/{id}", jobHandler.UpdateJob)
	mux.Handle("DELETE /job/{id}", authMW.RequireToken(http.HandlerFunc(jobHandler.DeleteJob)))
	mux.HandleFunc("GET /all-jobs", jobHandler.SearchJobs)

	mux.HandleFunc("POST /add-bid", bidHandler.CreateBid)
	mux.Handle("GET /bids/{email}", authMW.RequireToken(http.HandlerFunc(bidHandler.GetUserBids)))
	mux.HandleFunc("PATCH /bid-status-update/{id}", bidHandler.UpdateBidStatus)

	return mux
}
