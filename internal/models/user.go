package models

// User is the only persisted entity. The password is stored as given and
// never leaves the server in JSON.
type User struct {
	ID       int64  `gorm:"primaryKey" db:"id" json:"id"`
	Email    string `gorm:"size:120;not null" db:"email" json:"email"`
	Password string `gorm:"size:80;not null" db:"password" json:"-"`
}

func (User) TableName() string { return "users" }

// UserView is the public projection of a User.
type UserView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func (u User) Serialize() UserView {
	return UserView{ID: u.ID, Email: u.Email}
}
