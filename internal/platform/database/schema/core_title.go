package schema

// CoreTitleTable represents the 'core.title' table
type CoreTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// CoreTitle is the schema definition for core.title
var CoreTitle = CoreTitleTable{
	Table:       "core.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "category_id",
}

// GenreTitleTable represents the 'core.genre_title' junction table
type GenreTitleTable struct {
	Table      string
	ID         string
	GenreID    string
	TitleID    string
	Constraint string
}

// GenreTitle is the schema definition for core.genre_title
var GenreTitle = GenreTitleTable{
	Table:      "core.genre_title",
	ID:         "id",
	GenreID:    "genre_id",
	TitleID:    "title_id",
	Constraint: "unique_genre_title",
}
