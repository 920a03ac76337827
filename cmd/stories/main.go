package main

import (
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/glimpsesocial/glimpse/pkg/conf"
	"github.com/glimpsesocial/glimpse/pkg/sql"
	"github.com/glimpsesocial/glimpse/pkg/stories"
)

type Conf struct {
	Media conf.MediaConf    `mapstructure:"media"`
	DB    conf.PostgresConf `mapstructure:"db"`
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

	backend := stories.NewBackend(db)
	files := stories.NewFileBackend(config.Media.Path)

	now := time.Now().Unix()

	refs, err := backend.DeleteExpired(now)
	if err != nil {
		log.Fatalf("failed to delete expired stories: %s", err)
	}

	for _, ref := range refs {
		err := files.Remove(ref)
		if err != nil {
			log.Printf("files.Remove err: %v\n", err)
		}
	}
}
