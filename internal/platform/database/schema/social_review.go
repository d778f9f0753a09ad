package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table      string
	ID         string
	TitleID    string
	AuthorID   string
	Text       string
	Score      string
	PubDate    string
	Constraint string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:      "social.review",
	ID:         "id",
	TitleID:    "title_id",
	AuthorID:   "author_id",
	Text:       "text",
	Score:      "score",
	PubDate:    "pub_date",
	Constraint: "unique_review",
}
