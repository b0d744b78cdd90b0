package domain

import "time"

// User is a dashboard login. PasswordHash is a bcrypt hash, never the raw
// password.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	FullName     string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	ShopID       string    `json:"shop_id,omitempty" bson:"shop_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Profile is the user view returned to the browser.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	ShopID   string `json:"shop_id,omitempty"`
}

// Profile returns the redacted view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		ShopID:   u.ShopID,
	}
}
