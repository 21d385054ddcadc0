package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validInstructions = strings.Repeat("Stir gently. ", 5)

func intPtr(v int) *int { return &v }

func TestNewRecipe_TitleBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{name: "empty", title: "", wantErr: true},
		{name: "one char", title: "a", wantErr: false},
		{name: "100 chars", title: strings.Repeat("a", 100), wantErr: false},
		{name: "101 chars", title: strings.Repeat("a", 101), wantErr: true},
		{name: "100 multibyte chars", title: strings.Repeat("é", 100), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecipe(1, tt.title, validInstructions, nil)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				var fe *FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "title", fe.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, r.Title)
		})
	}
}

func TestNewRecipe_InstructionsBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		wantErr      bool
	}{
		{name: "empty", instructions: "", wantErr: true},
		{name: "49 chars", instructions: strings.Repeat("x", 49), wantErr: true},
		{name: "50 chars", instructions: strings.Repeat("x", 50), wantErr: false},
		{name: "49 multibyte chars", instructions: strings.Repeat("ü", 49), wantErr: true},
		{name: "50 multibyte chars", instructions: strings.Repeat("ü", 50), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRecipe(1, "Soup", tt.instructions, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRecipe_MinutesToComplete(t *testing.T) {
	tests := []struct {
		name    string
		minutes *int
		wantErr bool
	}{
		{name: "absent", minutes: nil, wantErr: false},
		{name: "zero", minutes: intPtr(0), wantErr: true},
		{name: "negative", minutes: intPtr(-5), wantErr: true},
		{name: "one", minutes: intPtr(1), wantErr: false},
		{name: "large", minutes: intPtr(600), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecipe(1, "Soup", validInstructions, tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			if tt.minutes == nil {
				assert.Nil(t, r.MinutesToComplete)
			} else {
				assert.Equal(t, *tt.minutes, *r.MinutesToComplete)
			}
		})
	}
}

func TestNewRecipe_RequiresOwner(t *testing.T) {
	_, err := NewRecipe(0, "Soup", validInstructions, nil)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestRecipeSetters_FailFastAndKeepPreviousValue(t *testing.T) {
	r, err := NewRecipe(1, "Soup", validInstructions, intPtr(10))
	require.NoError(t, err)

	assert.ErrorIs(t, r.SetTitle(strings.Repeat("a", 101)), ErrValidation)
	assert.Equal(t, "Soup", r.Title)

	assert.ErrorIs(t, r.SetInstructions("too short"), ErrValidation)
	assert.Equal(t, validInstructions, r.Instructions)

	assert.ErrorIs(t, r.SetMinutesToComplete(intPtr(0)), ErrValidation)
	assert.Equal(t, 10, *r.MinutesToComplete)

	require.NoError(t, r.SetMinutesToComplete(nil))
	assert.Nil(t, r.MinutesToComplete)
}

func TestRecipeView_HasNoNestedUser(t *testing.T) {
	r := Recipe{ID: 3, Title: "Soup", Instructions: validInstructions, UserID: 7}

	raw, err := json.Marshal(r.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.ElementsMatch(t,
		[]string{"id", "title", "instructions", "minutes_to_complete", "user_id"},
		keys(got))
	assert.Nil(t, got["minutes_to_complete"])
	assert.EqualValues(t, 7, got["user_id"])
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("alice", "", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "", u.Bio)
	assert.Equal(t, DefaultImageURL, u.ImageURL)
	assert.False(t, u.PasswordHash.IsSet())

	u, err = NewUser("bob", "Healthy recipes enthusiast", "https://example.com/bob.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/bob.png", u.ImageURL)

	_, err = NewUser("", "", "")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = NewUser(strings.Repeat("u", 50), "", "")
	assert.NoError(t, err)

	_, err = NewUser(strings.Repeat("u", 51), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUser_PasswordLifecycle(t *testing.T) {
	u, err := NewUser("alice", "", "")
	require.NoError(t, err)
	assert.False(t, u.Authenticate("secret123"))

	require.NoError(t, u.SetPassword("secret123"))
	assert.True(t, u.Authenticate("secret123"))
	assert.False(t, u.Authenticate("wrongpass"))

	require.NoError(t, u.SetPassword("another1"))
	assert.False(t, u.Authenticate("secret123"))
	assert.True(t, u.Authenticate("another1"))

	assert.ErrorIs(t, u.SetPassword(""), ErrMissingField)
	assert.ErrorIs(t, u.SetPassword(strings.Repeat("p", 73)), ErrValidation)
	assert.True(t, u.Authenticate("another1"))
}

func TestUser_HasNoPlaintextPasswordAccessor(t *testing.T) {
	typ := reflect.TypeOf(&User{})
	for i := 0; i < typ.NumMethod(); i++ {
		name := typ.Method(i).Name
		assert.NotEqual(t, "Password", name)
		assert.NotEqual(t, "GetPassword", name)
	}
	_, hasField := typ.Elem().FieldByName("Password")
	assert.False(t, hasField)
}

func TestUserView_OmitsCredentialAndListsRecipes(t *testing.T) {
	u, err := NewUser("alice", "I love cooking!", "")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword("secret123"))
	u.ID = 1

	raw, err := json.Marshal(u.View())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"recipes":[]`)

	u.Recipes = []Recipe{
		{ID: 1, Title: "Pancakes", Instructions: validInstructions, UserID: 1},
		{ID: 2, Title: "Salad", Instructions: validInstructions, UserID: 1},
	}
	view := u.View()
	require.Len(t, view.Recipes, 2)
	assert.Equal(t, "Pancakes", view.Recipes[0].Title)
	assert.Equal(t, "Salad", view.Recipes[1].Title)
}

func TestKind(t *testing.T) {
	_, err := NewRecipe(1, "", validInstructions, nil)
	assert.Equal(t, ErrValidation, Kind(err))
	assert.Equal(t, ErrNotFound, Kind(ErrNotFound))
	assert.Nil(t, Kind(assert.AnError))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestFieldLimits_FollowConstants(t *testing.T) {
	_, err := NewRecipe(1, strings.Repeat("t", MaxTitleLength), strings.Repeat("i", MinInstructionsLength), intPtr(MinMinutesToComplete))
	assert.NoError(t, err)

	_, err = NewRecipe(1, strings.Repeat("t", MaxTitleLength+1), validInstructions, nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewRecipe(1, "Soup", strings.Repeat("i", MinInstructionsLength-1), nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewRecipe(1, "Soup", validInstructions, intPtr(MinMinutesToComplete-1))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewUser(strings.Repeat("u", MaxUsernameLength), "", "")
	assert.NoError(t, err)
	_, err = NewUser(strings.Repeat("u", MaxUsernameLength+1), "", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateRecipeRequest_Minutes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *int
		wantErr bool
	}{
		{"absent", `{"title":"Soup"}`, nil, false},
		{"null", `{"minutes_to_complete":null}`, nil, false},
		{"number", `{"minutes_to_complete":30}`, intPtr(30), false},
		{"whole float", `{"minutes_to_complete":30.0}`, intPtr(30), false},
		{"numeric string", `{"minutes_to_complete":" 45 "}`, intPtr(45), false},
		{"zero passes decoding", `{"minutes_to_complete":0}`, intPtr(0), false},
		{"fraction", `{"minutes_to_complete":2.5}`, nil, true},
		{"word", `{"minutes_to_complete":"soon"}`, nil, true},
		{"bool", `{"minutes_to_complete":true}`, nil, true},
		{"huge", `{"minutes_to_complete":99999999999}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateRecipeRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := req.Minutes()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateRecipeRequest_KeepsOtherFields(t *testing.T) {
	var req CreateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Soup","instructions":"Simmer.","minutes_to_complete":"12"}`), &req))
	assert.Equal(t, "Soup", req.Title)
	assert.Equal(t, "Simmer.", req.Instructions)
	require.NotNil(t, req.MinutesToComplete)
	assert.Equal(t, 12, *req.MinutesToComplete)

	assert.Error(t, json.Unmarshal([]byte(`{"title":`), &req))
}
