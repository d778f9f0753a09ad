package schema

// TermTable describes the shape shared by 'core.category' and 'core.genre'.
type TermTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = TermTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = TermTable{
	Table: "core.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}
