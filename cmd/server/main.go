package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	storiesapi "github.com/glimpsesocial/glimpse/pkg/api/stories"
	"github.com/glimpsesocial/glimpse/pkg/clock"
	"github.com/glimpsesocial/glimpse/pkg/conf"
	"github.com/glimpsesocial/glimpse/pkg/devices"
	"github.com/glimpsesocial/glimpse/pkg/engagement"
	"github.com/glimpsesocial/glimpse/pkg/followers"
	httputil "github.com/glimpsesocial/glimpse/pkg/http"
	"github.com/glimpsesocial/glimpse/pkg/http/middlewares"
	"github.com/glimpsesocial/glimpse/pkg/notifications"
	"github.com/glimpsesocial/glimpse/pkg/pubsub"
	"github.com/glimpsesocial/glimpse/pkg/redis"
	"github.com/glimpsesocial/glimpse/pkg/sessions"
	"github.com/glimpsesocial/glimpse/pkg/sql"
	"github.com/glimpsesocial/glimpse/pkg/stories"
	"github.com/glimpsesocial/glimpse/pkg/users"
)

type Conf struct {
	Media  conf.MediaConf    `mapstructure:"media"`
	DB     conf.PostgresConf `mapstructure:"db"`
	Redis  conf.RedisConf    `mapstructure:"redis"`
	Listen conf.AddrConf     `mapstructure:"listen"`
}

func parse() (*Conf, error) {
	var file string
	flag.StringVar(&file, "c", "config.toml", "config file")
	flag.Parse()

	config := &Conf{}
	err := conf.Load(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func main() {
	config, err := parse()
	if err != nil {
		log.Fatal("failed to parse config")
	}

	db, err := sql.Open(config.DB)
	if err != nil {
		log.Fatalf("failed to open db: %s", err)
	}

	rdb := redis.NewRedis(config.Redis)
	queue := pubsub.NewQueue(rdb)

	sm := sessions.NewSessionManager(rdb)
	amw := middlewares.NewAuthenticationMiddleware(sm)

	backend := stories.NewBackend(db)
	files := stories.NewFileBackend(config.Media.Path)
	tracker := engagement.NewTracker(backend, rdb, clock.System{})

	endpoint := storiesapi.NewEndpoint(
		backend,
		files,
		users.NewBackend(db),
		tracker,
		queue,
		clock.System{},
	)

	devicesEndpoint := devices.NewEndpoint(devices.NewBackend(db))
	followersEndpoint := followers.NewEndpoint(followers.NewFollowersBackend(db), queue)
	notificationsEndpoint := notifications.NewEndpoint(notifications.NewStorage(rdb))

	r := mux.NewRouter()

	r.NotFoundHandler = http.HandlerFunc(httputil.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(httputil.NotAllowedHandler)

	r.PathPrefix("/v1/stories").Handler(http.StripPrefix("/v1/stories", endpoint.Router()))
	r.PathPrefix("/v1/devices").Handler(http.StripPrefix("/v1/devices", devicesEndpoint.Router()))
	r.PathPrefix("/v1/users").Handler(http.StripPrefix("/v1/users", followersEndpoint.Router()))
	r.PathPrefix("/v1/notifications").Handler(http.StripPrefix("/v1/notifications", notificationsEndpoint.Router()))

	addr := fmt.Sprintf(":%d", config.Listen.Port)

	log.Print(http.ListenAndServe(addr, httputil.CORS(amw.Middleware(r))))
}
