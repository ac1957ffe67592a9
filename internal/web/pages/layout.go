package pages

import (
	"ezzleads/internal/models"
	"ezzleads/internal/web/flash"
)

// Page carries what every view needs besides its own content.
type Page struct {
	Title   string
	Session *models.Session
	Notice  *flash.Notice
	// WatchRole, when set, subscribes the page to session changes and
	// leaves it if the session stops qualifying.
	WatchRole models.Role
}
