package models

// Genre is a genre as known to the remote catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genres is the remote catalog's movie genre table. It changes rarely
// enough that shipping it as data beats an extra network round trip.
var Genres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

// GenreName looks up the display name for a genre ID. Returns "" for
// unknown IDs.
func GenreName(id int) string {
	for _, g := range Genres {
		if g.ID == id {
			return g.Name
		}
	}
	return ""
}
