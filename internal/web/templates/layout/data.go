package layout

// PageData holds data common to every page
type PageData struct {
	Title string
}
