package cmd

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/mthd/constants"
	"github.com/jsphweid/mthd/header"
	"github.com/jsphweid/mthd/midi"
	"github.com/jsphweid/mthd/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, defaults to $LISTEN_ADDR or :8080")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the header API over HTTP",
	Long: `Serves the header API over HTTP. All endpoints take JSON with the MIDI
bytes base64 encoded in "data".

  POST /header             decode the header
  POST /header/edit        apply an edit, returns the new bytes
  POST /header/resolution  tick resolution for an optional tempo`,
	Run: func(cmd *cobra.Command, args []string) {
		addr := serveAddr
		if addr == "" {
			addr = constants.GetListenAddr()
		}
		serve(addr)
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/header", HandleHeader).Methods("POST")
	router.HandleFunc("/header/edit", HandleEdit).Methods("POST")
	router.HandleFunc("/header/resolution", HandleResolution).Methods("POST")
	router.Use(logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: constants.GetCorsOrigins(),
		AllowedMethods: []string{http.MethodPost},
	})
	return c.Handler(router)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		log.Printf("%s %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func HandleHeader(w http.ResponseWriter, r *http.Request) {
	var input model.HeaderRequest
	if !decodeBody(w, r, &input) {
		return
	}
	h, err := header.Bind(input.Data, input.Offset)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s, err := midi.Summarize("", h)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func HandleEdit(w http.ResponseWriter, r *http.Request) {
	var input model.EditRequest
	if !decodeBody(w, r, &input) {
		return
	}
	h, err := header.Bind(input.Data, input.Offset)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := midi.ApplyEdit(h, input.Edit); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s, err := midi.Summarize("", h)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, model.EditResponse{Header: s, Data: input.Data})
}

func HandleResolution(w http.ResponseWriter, r *http.Request) {
	var input model.HeaderRequest
	if !decodeBody(w, r, &input) {
		return
	}
	h, err := header.Bind(input.Data, input.Offset)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	res, err := h.TickResolution(input.Tempo)
	if err == nil && math.IsInf(res, 0) {
		err = errors.New("tick resolution is undefined for zero ticks")
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ResolutionResponse{Tempo: input.Tempo, TickResolution: res})
}

func serve(addr string) {
	log.Printf("Listening on %v", addr)
	log.Fatal(http.ListenAndServe(addr, NewRouter()))
}
