package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dashboard.GO/client"
	"dashboard.GO/client/fakestore"
	"dashboard.GO/client/identity"
	"dashboard.GO/client/maestro"
	"dashboard.GO/config"
	"dashboard.GO/core/auth"
	"dashboard.GO/core/cache"
	entity "dashboard.GO/model/entity"
	pinnedRepo "dashboard.GO/model/repository/pinned"
	sessionRepo "dashboard.GO/model/repository/session"
	"dashboard.GO/service/cart"
	"dashboard.GO/service/editor"
)

// Deps is everything a route module may use. Built once at startup.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Cache  cache.Store

	Sessions *sessionRepo.SessionRepository
	Pinned   *pinnedRepo.PinnedRepository

	Identity  *identity.Client
	Maestro   *maestro.Client
	FakeStore *fakestore.Client

	Editors *editor.Store
	Carts   *cart.Store
}

// NewDeps wires the collaborators from cfg. rdb may be nil, which keeps the
// response cache in process.
func NewDeps(cfg *config.Config, db *gorm.DB, log *zap.Logger, rdb *redis.Client) *Deps {
	hc := client.NewHTTPClient(cfg.HTTPTimeout)
	store := cache.NewStore(rdb)

	d := &Deps{
		Config:   cfg,
		DB:       db,
		Log:      log,
		Cache:    store,
		Sessions: sessionRepo.NewSessionRepository(db),
		Pinned:   pinnedRepo.NewPinnedRepository(db),
		Identity: identity.New(identity.Config{
			Variant:      identity.Variant(cfg.IdentityVariant),
			URL:          cfg.IdentityURL,
			ClientID:     cfg.MaestroClientID,
			ClientSecret: cfg.MaestroClientSecret,
		}, hc),
		Maestro: maestro.New(hc, maestro.Options{
			BaseURL:           cfg.MaestroURL,
			WarehouseOverride: cfg.WarehouseOverride,
			Cache:             store,
			CacheTTL:          cfg.CacheTTL,
		}),
		FakeStore: fakestore.New(hc, cfg.FakeStoreURL, store, cfg.CacheTTL),
		Carts:     cart.NewStore(),
	}
	d.Editors = editor.NewStore(d.catalogFor)
	return d
}

func (d *Deps) catalogFor(collectionID int) editor.Catalog {
	if collectionID == editor.SandboxCollectionID {
		return editor.FakeStoreCatalog{Store: d.FakeStore}
	}
	return maestro.CollectionCatalog{Client: d.Maestro, CollectionID: collectionID}
}

// AuthOptions returns the session cookie settings.
func (d *Deps) AuthOptions() auth.Options {
	return auth.Options{CookieName: d.Config.SessionCookie, Secure: d.Config.CookieSecure}
}

// Editor returns the session's editor for collectionID, loading it on first
// access. A saved arrangement is restored before the first load. The editor
// is returned even when loading fails so callers can render the error.
func (d *Deps) Editor(ctx context.Context, s *entity.Session, collectionID int) (*editor.Editor, error) {
	ed := d.Editors.Get(s.ID, collectionID)
	if ed.Loaded() {
		return ed, nil
	}
	if sel, _ := ed.Selected(); len(sel) == 0 && collectionID != editor.SandboxCollectionID {
		row, products, err := d.Pinned.Find(collectionID)
		switch {
		case err == nil:
			ed.Restore(products, row.Layout)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			d.Log.Warn("pinned layout lookup failed", zap.Int("collection", collectionID), zap.Error(err))
		}
	}
	if err := ed.Load(ctx, s.AccessToken); err != nil {
		return ed, err
	}
	return ed, nil
}

// MountEditor starts a fresh edit view for collectionID. Unsaved work from an
// earlier visit is discarded and any fetch still running for it turns stale.
func (d *Deps) MountEditor(ctx context.Context, s *entity.Session, collectionID int) (*editor.Editor, error) {
	d.Editors.Drop(s.ID, collectionID)
	return d.Editor(ctx, s, collectionID)
}

// ForgetSession drops the in-memory state of a signed-out session.
func (d *Deps) ForgetSession(sessionID string) {
	d.Editors.DropSession(sessionID)
	d.Carts.Drop(sessionID)
}

// UpstreamStatus maps an upstream failure to the status returned to the browser.
func UpstreamStatus(err error) int {
	var fe *client.FetchError
	switch {
	case errors.Is(err, editor.ErrStale):
		return http.StatusConflict
	case errors.Is(err, editor.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.As(err, &fe):
		if fe.Status == http.StatusUnauthorized {
			return http.StatusUnauthorized
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
