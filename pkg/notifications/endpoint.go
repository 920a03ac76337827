package notifications

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	httputil "github.com/glimpsesocial/glimpse/pkg/http"
)

type Endpoint struct {
	storage *Storage
}

func NewEndpoint(storage *Storage) *Endpoint {
	return &Endpoint{
		storage: storage,
	}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.Path("/").Methods("GET").HandlerFunc(e.GetNotifications)

	return r
}

func (e *Endpoint) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	list, err := e.storage.GetNotifications(userID)
	if err != nil {
		log.Printf("storage.GetNotifications err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeNotFound, "failed")
		return
	}

	e.storage.MarkNotificationsViewed(userID)

	err = httputil.JsonEncode(w, list)
	if err != nil {
		log.Printf("failed to write notifications response: %s\n", err.Error())
	}
}
