package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Bio         string
	Role        string
	IsSuperuser string
	Password    string
	LastLogin   string
	DateJoined  string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	FirstName:   "first_name",
	LastName:    "last_name",
	Bio:         "bio",
	Role:        "role",
	IsSuperuser: "is_superuser",
	Password:    "password",
	LastLogin:   "last_login",
	DateJoined:  "date_joined",
}

// Columns returns the profile columns exposed by the API, in scan order.
