package models

import (
	"ctchen222/Recipe-Box/internal/validator"
	"strconv"
)

// Recipe field limits. Lengths count characters.
const (
	MaxTitleLength        = 100
	MinInstructionsLength = 50
	MinMinutesToComplete  = 1
)

var (
	titleRules             = "required,max=" + strconv.Itoa(MaxTitleLength)
	instructionsRules      = "min=" + strconv.Itoa(MinInstructionsLength)
	minutesToCompleteRules = "min=" + strconv.Itoa(MinMinutesToComplete)
)

// Recipe represents a recipe owned by exactly one user.
type Recipe struct {
	ID                int64  `db:"id"`
	Title             string `db:"title"`
	Instructions      string `db:"instructions"`
	MinutesToComplete *int   `db:"minutes_to_complete"`
	UserID            int64  `db:"user_id"`
}

// RecipeView is the serializable projection of a recipe. It carries the
// owner's id only, never the owner itself.
type RecipeView struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete *int   `json:"minutes_to_complete"`
	UserID            int64  `json:"user_id"`
}

// NewRecipe builds a recipe for userID, validating every field. A nil
// minutesToComplete means the value is unknown and is stored as NULL.
func NewRecipe(userID int64, title, instructions string, minutesToComplete *int) (*Recipe, error) {
	if userID <= 0 {
		return nil, missingField("user_id")
	}
	r := &Recipe{UserID: userID}
	if err := r.SetTitle(title); err != nil {
		return nil, err
	}
	if err := r.SetInstructions(instructions); err != nil {
		return nil, err
	}
	if err := r.SetMinutesToComplete(minutesToComplete); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTitle assigns a title of 1 to 100 characters.
func (r *Recipe) SetTitle(title string) error {
	if err := validator.Var(title, titleRules); err != nil {
		return invalidField("title", "Title must be between 1 and 100 characters.")
	}
	r.Title = title
	return nil
}

// SetInstructions assigns instructions of at least 50 characters.
func (r *Recipe) SetInstructions(instructions string) error {
	if err := validator.Var(instructions, instructionsRules); err != nil {
		return invalidField("instructions", "Instructions must be at least 50 characters long.")
	}
	r.Instructions = instructions
	return nil
}

// SetMinutesToComplete assigns an optional duration, which must be positive
// when present.
func (r *Recipe) SetMinutesToComplete(minutes *int) error {
	if minutes == nil {
		r.MinutesToComplete = nil
		return nil
	}
	if err := validator.Var(*minutes, minutesToCompleteRules); err != nil {
		return invalidField("minutes_to_complete", "Minutes to complete must be a positive number.")
	}
	m := *minutes
	r.MinutesToComplete = &m
	return nil
}

func (r *Recipe) View() RecipeView {
	return RecipeView{
		ID:                r.ID,
		Title:             r.Title,
		Instructions:      r.Instructions,
		MinutesToComplete: r.MinutesToComplete,
		UserID:            r.UserID,
	}
}
