package stories

import (
	"io/ioutil"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/segmentio/ksuid"

	"github.com/glimpsesocial/glimpse/pkg/clock"
	"github.com/glimpsesocial/glimpse/pkg/engagement"
	httputil "github.com/glimpsesocial/glimpse/pkg/http"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/stories"
	"github.com/glimpsesocial/glimpse/pkg/users"
)

const maxMediaSize = 32 << 20

type Endpoint struct {
	backend *stories.Backend
	files   *stories.FileBackend
	users   *users.Backend
	tracker *engagement.Tracker
	queue   *pubsub.Queue
	clock   clock.Clock
}

func NewEndpoint(
	backend *stories.Backend,
	files *stories.FileBackend,
	ub *users.Backend,
	tracker *engagement.Tracker,
	queue *pubsub.Queue,
	clk clock.Clock,
) *Endpoint {
	return &Endpoint{
		backend: backend,
		files:   files,
		users:   ub,
		tracker: tracker,
		queue:   queue,
		clock:   clk,
	}
}

func (e *Endpoint) Router() *mux.Router {
	r := mux.NewRouter()

	r.Path("/").Methods("POST").HandlerFunc(e.CreateStory)
	r.Path("/feed").Methods("GET").HandlerFunc(e.GetFeed)
	r.Path("/{id}").Methods("GET").HandlerFunc(e.GetStory)
	r.Path("/{id}").Methods("DELETE").HandlerFunc(e.DeleteStory)
	r.Path("/{id}/highlight").Methods("POST").HandlerFunc(e.Highlight)
	r.Path("/{id}/highlight").Methods("DELETE").HandlerFunc(e.Unhighlight)
	r.Path("/{id}/view").Methods("POST").HandlerFunc(e.RecordView)
	r.Path("/{id}/reactions").Methods("GET").HandlerFunc(e.GetReactions)
	r.Path("/{id}/reactions").Methods("POST").HandlerFunc(e.AddReaction)
	r.Path("/{id}/reactions").Methods("DELETE").HandlerFunc(e.RemoveReaction)

	return r
}

func (e *Endpoint) CreateStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	err := r.ParseMultipartForm(maxMediaSize)
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request")
		return
	}

	user, err := e.users.GetUserByID(userID)
	if err != nil {
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
		return
	}

	now := e.clock.Now()

	story := &stories.Story{
		ID: ksuid.New().String(),
		Author: stories.Author{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			Image:       user.Image,
		},
		Caption:    r.Form.Get("caption"),
		Background: r.Form.Get("background"),
		Privacy:    stories.Privacy(r.Form.Get("privacy")),
		CreatedAt:  now.Unix(),
		ExpiresAt:  now.Add(stories.Lifetime).Unix(),
	}

	if story.Privacy == "" {
		story.Privacy = stories.PrivacyPublic
	}

	file, _, err := r.FormFile("media")
	if err != nil {
		if err != http.ErrMissingFile {
			httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid media")
			return
		}

		story.MediaType = stories.MediaTypeText
	} else {
		defer file.Close()

		data, err := ioutil.ReadAll(file)
		if err != nil {
			httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid media")
			return
		}

		name, err := e.files.Store(data)
		if err != nil {
			httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "unsupported media")
			return
		}

		story.MediaRef = name
		story.MediaType = mediaTypeForFile(name)

		if story.MediaType == stories.MediaTypeVideo {
			duration, err := strconv.ParseFloat(r.Form.Get("duration"), 64)
			if err == nil {
				story.VideoDuration = duration
			}
		}
	}

	err = e.backend.AddStory(story)
	if err != nil {
		if story.MediaRef != "" {
			_ = e.files.Remove(story.MediaRef)
		}

		if err == stories.ErrInvalidStory {
			httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid story")
			return
		}

		log.Printf("stories.AddStory err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
		return
	}

	err = e.queue.Publish(pubsub.StoryTopic, pubsub.NewStoryEvent(story))
	if err != nil {
		log.Printf("queue.Publish err: %v\n", err)
	}

	err = httputil.JsonEncode(w, story)
	if err != nil {
		log.Printf("failed to write story response: %s\n", err.Error())
	}
}

func (e *Endpoint) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	now := e.clock.Now()

	active, err := e.backend.GetStoriesForAudience(userID, now.Unix())
	if err != nil {
		log.Printf("stories.GetStoriesForAudience err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeNotFound, "failed")
		return
	}

	feed := stories.BuildFeed(active, userID, now)

	err = httputil.JsonEncode(w, feed)
	if err != nil {
		log.Printf("failed to write feed response: %s\n", err.Error())
	}
}

func (e *Endpoint) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := e.backend.GetStory(mux.Vars(r)["id"])
	if err != nil {
		if err == stories.ErrStoryNotFound {
			httputil.JsonError(w, http.StatusNotFound, httputil.ErrorCodeStoryNotFound, "not found")
			return
		}

		log.Printf("stories.GetStory err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeNotFound, "failed")
		return
	}

	err = httputil.JsonEncode(w, story)
	if err != nil {
		log.Printf("failed to write story response: %s\n", err.Error())
	}
}

func (e *Endpoint) DeleteStory(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	id := mux.Vars(r)["id"]

	story, err := e.backend.GetStory(id)
	if err != nil {
		if err == stories.ErrStoryNotFound {
			httputil.JsonError(w, http.StatusNotFound, httputil.ErrorCodeStoryNotFound, "not found")
			return
		}

		log.Printf("stories.GetStory err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeNotFound, "failed")
		return
	}

	err = e.backend.DeleteStory(id, userID)
	if err != nil {
		e.writeMutationError(w, err)
		return
	}

	if story.MediaRef != "" {
		err = e.files.Remove(story.MediaRef)
		if err != nil {
			log.Printf("files.Remove err: %v\n", err)
		}
	}

	err = e.queue.Publish(pubsub.StoryTopic, pubsub.NewStoryDeletedEvent(id, userID))
	if err != nil {
		log.Printf("queue.Publish err: %v\n", err)
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) Highlight(w http.ResponseWriter, r *http.Request) {
	e.setHighlighted(w, r, true)
}

func (e *Endpoint) Unhighlight(w http.ResponseWriter, r *http.Request) {
	e.setHighlighted(w, r, false)
}

func (e *Endpoint) setHighlighted(w http.ResponseWriter, r *http.Request, highlighted bool) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	err := e.backend.SetHighlighted(mux.Vars(r)["id"], userID, highlighted)
	if err != nil {
		e.writeMutationError(w, err)
		return
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	// the view only counts once the store confirmed it
	err := e.tracker.RecordView(mux.Vars(r)["id"], userID)
	if err != nil {
		log.Printf("tracker.RecordView err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
		return
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) GetReactions(w http.ResponseWriter, r *http.Request) {
	summary, err := e.tracker.Summarize(mux.Vars(r)["id"])
	if err != nil {
		log.Printf("tracker.Summarize err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeNotFound, "failed")
		return
	}

	err = httputil.JsonEncode(w, summary)
	if err != nil {
		log.Printf("failed to write reactions response: %s\n", err.Error())
	}
}

func (e *Endpoint) AddReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	err := r.ParseForm()
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request")
		return
	}

	emoji := r.Form.Get("emoji")
	if emoji == "" {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid emoji")
		return
	}

	id := mux.Vars(r)["id"]

	err = e.tracker.AddReaction(id, userID, emoji)
	if err != nil {
		if err == engagement.ErrRateLimited {
			httputil.JsonError(w, http.StatusTooManyRequests, httputil.ErrorCodeRateLimited, "rate limited")
			return
		}

		log.Printf("tracker.AddReaction err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
		return
	}

	err = e.queue.Publish(pubsub.StoryTopic, pubsub.NewStoryReactionEvent(id, userID, emoji))
	if err != nil {
		log.Printf("queue.Publish err: %v\n", err)
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := httputil.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid id")
		return
	}

	err := r.ParseForm()
	if err != nil {
		httputil.JsonError(w, http.StatusBadRequest, httputil.ErrorCodeInvalidRequestBody, "invalid request")
		return
	}

	id := mux.Vars(r)["id"]

	var removeErr error
	emoji := r.Form.Get("emoji")
	if emoji == "" {
		removeErr = e.tracker.RemoveAllReactionsByUser(id, userID)
	} else {
		removeErr = e.tracker.RemoveReaction(id, userID, emoji)
	}

	if removeErr != nil {
		log.Printf("tracker.RemoveReaction err: %v\n", removeErr)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
		return
	}

	httputil.JsonSuccess(w)
}

func (e *Endpoint) writeMutationError(w http.ResponseWriter, err error) {
	switch err {
	case stories.ErrStoryNotFound:
		httputil.JsonError(w, http.StatusNotFound, httputil.ErrorCodeStoryNotFound, "not found")
	case stories.ErrPermissionDenied:
		httputil.JsonError(w, http.StatusForbidden, httputil.ErrorCodeUnauthorized, "not allowed")
	default:
		log.Printf("stories mutation err: %v\n", err)
		httputil.JsonError(w, http.StatusInternalServerError, httputil.ErrorCodeFailedToStoreStory, "failed")
	}
}

func mediaTypeForFile(name string) stories.MediaType {
	if len(name) > 4 && name[len(name)-4:] == ".mp4" {
		return stories.MediaTypeVideo
	}

	return stories.MediaTypeImage
}
