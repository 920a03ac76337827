package followers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	httputil "github.com/glimpsesocial/glimpse/pkg/http"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
)

type Endpoint struct {
	backend *FollowersBackend
	queue   *pubsub.Queue
}

func NewEndpoint(backend *FollowersBackend, queue *pubsub.Queue) *Endpoint {
	return &Endpoint{
		backend: backend,
		queue:   queue,
	}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.Path("/{id:[0-9]+}/follow").Methods("POST").HandlerFunc(e.Follow)
	r.Path("/{id:[0-9]+}/follow").Methods("DELETE").HandlerFunc(e.Unfollow)

	return r
}

func (e *Endpoint) Follow(w http.ResponseWriter, r *http.Request) {
	userID, target, ok := e.params(w, r)
	if !ok {
		return
	}

	err := e.backend.FollowUser(userID, target)
	if err != nil {
		log.Printf("followers.FollowUser err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeInvalidRequestBody, "failed")
		return
	}

	err = e.queue.Publish(pubsub.UserTopic, pubsub.NewFollowerEvent(userID, target))
	if err != nil {
		log.Printf("queue.Publish err: %v\n", err)
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) Unfollow(w http.ResponseWriter, r *http.Request) {
	userID, target, ok := e.params(w, r)
	if !ok {
		return
	}

	err := e.backend.UnfollowUser(userID, target)
	if err != nil {
		log.Printf("followers.UnfollowUser err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeInvalidRequestBody, "failed")
		return
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) params(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return 0, 0, false
	}

	target, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || target == userID {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return 0, 0, false
	}

	return userID, target, true
}
