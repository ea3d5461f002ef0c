package models

// CategoryView is one category as rendered by the pug views.
type CategoryView struct {
	Key    string
	Name   string
	Images []string
}

// Index is the data for the public gallery index page.
type Index struct {
	Categories []CategoryView
}

// GalleryPage is the data for one category's gallery page.
type GalleryPage struct {
	Key      string
	Name     string
	Images   []string
	Subtitle string
}

// Admin is the data for the admin page.
type Admin struct {
	Categories []CategoryView
	Username   string
}
