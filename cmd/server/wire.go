//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/sayemkalim/casesync/internal/app"
	"github.com/sayemkalim/casesync/internal/config"
	"github.com/sayemkalim/casesync/internal/feed"
	"github.com/sayemkalim/casesync/internal/http"
	"github.com/sayemkalim/casesync/internal/http/controller"
	"github.com/sayemkalim/casesync/internal/logging"
	"github.com/sayemkalim/casesync/internal/notifier"
	"github.com/sayemkalim/casesync/internal/queue/rabbitmq"
	"github.com/sayemkalim/casesync/internal/service/notify"
	"github.com/sayemkalim/casesync/internal/session"
	"github.com/sayemkalim/casesync/internal/store"
	"github.com/sayemkalim/casesync/internal/toast"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		store.NewNotificationStore,
		store.NewSnapshotStore,
		feed.NewHub,
		notifier.NewSinks,
		notifier.NewCenter,
		notify.NewService,
		wire.Bind(new(toast.Responder), new(*notify.Service)),
		session.NewManager,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewConsumer,
		rabbitmq.NewPublisher,
		app.NewApp,
	)
	return &app.App{}, nil
}
