package server

import (
	"net/http"

	"gramtax/internal/handler"
	"gramtax/internal/middleware"
)

func NewMux(
	recommendHandler *handler.RecommendHandler,
	learnHandler *handler.LearnHandler,
	splitHandler *handler.SplitHandler,
	exportHandler *handler.ExportHandler,
	taxonomyHandler *handler.TaxonomyHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/recommend", recommendHandler.Handle)
	mux.HandleFunc("/api/learn", learnHandler.Handle)
	mux.HandleFunc("/api/split", splitHandler.Handle)
	mux.HandleFunc("/api/export", exportHandler.Handle)
	mux.HandleFunc("/api/taxonomy/resolve", taxonomyHandler.Handle)

	return middleware.CORS(mux)
}
