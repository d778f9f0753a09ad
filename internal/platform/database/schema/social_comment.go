package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:    "social.comment",
	ID:       "id",
	ReviewID: "review_id",
	AuthorID: "author_id",
	Text:     "text",
	PubDate:  "pub_date",
}
