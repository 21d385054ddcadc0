package models

import (
	"errors"
	"strconv"

	"ctchen222/Recipe-Box/internal/credential"
	"ctchen222/Recipe-Box/internal/validator"
)

// DefaultImageURL is the avatar used when a user does not provide one.
const DefaultImageURL = "https://cdn.pixabay.com/photo/2017/11/10/05/24/screenshot_4.jpg"

// MaxUsernameLength is the longest username accepted, in characters.
const MaxUsernameLength = 50

var usernameRules = "max=" + strconv.Itoa(MaxUsernameLength)

// User represents a user in the database. The credential is only reachable
// through SetPassword and Authenticate.
type User struct {
	ID           int64           `db:"id"`
	Username     string          `db:"username"`
	PasswordHash credential.Hash `db:"password_hash" json:"-"`
	Bio          string          `db:"bio"`
	ImageURL     string          `db:"image_url"`

	// Recipes is filled by the repository layer, oldest first.
	Recipes []Recipe `db:"-"`
}

// UserView is the serializable projection of a user.
type UserView struct {
	ID       int64        `json:"id"`
	Username string       `json:"username"`
	Bio      string       `json:"bio"`
	ImageURL string       `json:"image_url"`
	Recipes  []RecipeView `json:"recipes"`
}

// NewUser builds a user without a password. An empty imageURL falls back to
// DefaultImageURL.
func NewUser(username, bio, imageURL string) (*User, error) {
	if username == "" {
		return nil, missingField("username")
	}
	if err := validator.Var(username, usernameRules); err != nil {
		return nil, invalidField("username", "Username must be between 1 and 50 characters.")
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}
	return &User{
		Username: username,
		Bio:      bio,
		ImageURL: imageURL,
	}, nil
}

// SetPassword replaces the stored credential with a hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	hash, err := credential.New(plaintext)
	switch {
	case errors.Is(err, credential.ErrEmptyPassword):
		return missingField("password")
	case errors.Is(err, credential.ErrPasswordTooLong):
		return invalidField("password", err.Error())
	case err != nil:
		return err
	}
	u.PasswordHash = hash
	return nil
}

// Authenticate reports whether plaintext matches the stored credential.
func (u *User) Authenticate(plaintext string) bool {
	return u.PasswordHash.Matches(plaintext)
}

func (u *User) View() UserView {
	recipes := make([]RecipeView, 0, len(u.Recipes))
	for i := range u.Recipes {
		recipes = append(recipes, u.Recipes[i].View())
	}
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		ImageURL: u.ImageURL,
		Recipes:  recipes,
	}
}
