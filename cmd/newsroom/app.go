package main

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/newsroom/internal/auth"
	"github.com/DjordjeVuckovic/newsroom/internal/backend"
	"github.com/DjordjeVuckovic/newsroom/internal/collection"
	"github.com/DjordjeVuckovic/newsroom/internal/quota"
	"github.com/DjordjeVuckovic/newsroom/internal/storage"
	"github.com/DjordjeVuckovic/newsroom/internal/storage/factory"
	"github.com/DjordjeVuckovic/newsroom/internal/validation"
	"github.com/DjordjeVuckovic/newsroom/internal/workspace"
)

// app is one wired workspace: persisted state, backend client, auth and the
// session on top.
type app struct {
	cfg       *NewsroomConfig
	store     storage.Store
	client    *backend.Client
	auth      *auth.Session
	workspace *workspace.Session
}

func newApp(ctx context.Context, cfg *NewsroomConfig) (*app, error) {
	store, err := factory.NewStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	client, err := backend.NewClientFromConfig(cfg.Backend, backend.WithTokenSource(func() string {
		token, _ := store.Get(storage.KeyToken)
		return token
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	tracker := quota.NewTracker(store)
	authSession := auth.NewSession(client, store, tracker)
	authSession.Restore(ctx)

	ws, err := workspace.New(workspace.Deps{
		Analyzer:   client,
		Rewriter:   client,
		Articles:   client,
		Editor:     client,
		Collection: collection.NewStore(client),
		Quota:      tracker,
		Identity:   authSession,
	}, workspace.Config{
		GuestLimit:   cfg.GuestLimit,
		Policy:       validation.DefaultPolicy(),
		ShareBaseURL: cfg.ShareBaseURL,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		store:     store,
		client:    client,
		auth:      authSession,
		workspace: ws,
	}, nil
}

func (a *app) Close() {
	a.workspace.Close()
}
