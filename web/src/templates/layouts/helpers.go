package layouts

// AppName is the product name used in titles.
var AppName = "Vintechs"

// CalculateTitle handles the conditional logic for the page title.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + AppName
	}
	return AppName
}
