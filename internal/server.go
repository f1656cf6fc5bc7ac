package internal

import (
	"encoding/json"
	"net/http"

	"github.com/b33n-tech/scrapper-persee/pkg/logger"
)

// Handler triggers a harvest over HTTP and answers with the records.
func Handler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Filter string   `json:"filter"`
			Sets   []string `json:"sets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		session, err := svc.Run(r.Context(), Args{Filter: req.Filter, Sets: req.Sets})
		if err != nil {
			logger.Error("harvest error: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(struct {
			Records any `json:"records"`
			Errors  any `json:"errors"`
		}{session.Records, session.Errors}); err != nil {
			logger.Error("encoding response: %v", err)
		}
	}
}

// Serve exposes the harvest endpoint until the process exits.
func Serve(svc *Service, addr string) error {
	http.HandleFunc("/harvest", Handler(svc))
	logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
