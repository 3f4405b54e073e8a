//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/wordvault/internal/adapter/repository"
	"github.com/eslsoft/wordvault/internal/adapter/rest"
	"github.com/eslsoft/wordvault/internal/infrastructure/config"
	"github.com/eslsoft/wordvault/internal/infrastructure/server"
	"github.com/eslsoft/wordvault/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var storeSet = wire.NewSet(
	ProvideStore,
	ProvideCachePolicy,
)

var repositorySet = wire.NewSet(
	repository.NewWordbookRepository,
	repository.NewWordRepository,
	repository.NewPosTagRepository,
)

var usecaseSet = wire.NewSet(
	usecase.NewCaches,
	usecase.NewWordbookUsecase,
	usecase.NewWordUsecase,
	usecase.NewPosTagUsecase,
)

var handlerSet = wire.NewSet(
	rest.NewWordbookHandler,
	rest.NewWordHandler,
	rest.NewPosTagHandler,
	rest.NewRouter,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		storeSet,
		repositorySet,
		usecaseSet,
		handlerSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
