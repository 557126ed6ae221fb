package dashboard

import "github.com/vintechs/portal/internal/catalog"

// PageData is the view model for the dashboard.
type PageData struct {
	AppName string
	// Email is the signed-in visitor's address, used until the profile
	// card has loaded.
	Email   string
	Catalog *catalog.Catalog
}

// UserCard is what the sidebar shows about the visitor.
type UserCard struct {
	Name     string
	Email    string
	Initials string
}
