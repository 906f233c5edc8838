package api

import (
	"time"

	"github.com/Vasist2305/period-pal-blossom-bloom/internal/db"
	"github.com/Vasist2305/period-pal-blossom-bloom/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "blossom_token"
	authTokenTTL   = 7 * 24 * time.Hour

	contextUserKey = "current_user"
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	repositories *db.Repositories
	tracker      *services.TrackerService
}

func NewHandler(database *gorm.DB, store services.SnapshotStore, secretKey string, cookieSecure bool) *Handler {
	return &Handler{
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
		repositories: db.NewRepositories(database),
		tracker:      services.NewTrackerService(store),
	}
}
