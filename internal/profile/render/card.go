// Package render turns user records into display structures. Nothing in it
// touches the network or shared state.
package render

import (
	"strings"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
	"github.com/AlibekovAA/profile-cards/internal/profile/domain"
)

type Avatar struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Notice struct {
	Lines              []string `json:"lines"`
	DocumentationLabel string   `json:"documentation_label"`
}

type Card struct {
	ID      string `json:"id"`
	Avatar  Avatar `json:"avatar"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Website string `json:"website"`
	Address string `json:"address"`
	Notice  Notice `json:"notice"`
}

// AdvisoryNotice is shown on every card and carries no per-user data.
func AdvisoryNotice() Notice {
	return Notice{
		Lines:              []string{"You are using an", "outdated API endpoint."},
		DocumentationLabel: "Documentation",
	}
}

type Renderer struct {
	avatarBaseURL string
	avatarStyle   string
}

func NewRenderer(avatarBaseURL, avatarStyle string) Renderer {
	if avatarBaseURL == "" {
		avatarBaseURL = constants.DefaultAvatarBaseURL
	}
	if avatarStyle == "" {
		avatarStyle = constants.DefaultAvatarStyle
	}
	return Renderer{
		avatarBaseURL: strings.TrimRight(avatarBaseURL, "/"),
		avatarStyle:   avatarStyle,
	}
}

func (r Renderer) Render(u domain.User) Card {
	return Card{
		ID: u.ID.String(),
		Avatar: Avatar{
			URL: AvatarURL(r.avatarBaseURL, r.avatarStyle, u.Name.String()),
			Alt: u.Name.String() + "'s avatar",
		},
		Name:    u.Name.String(),
		Email:   u.Email.String(),
		Phone:   u.Phone.String(),
		Company: u.Company.Name.String(),
		Website: u.Website.String(),
		Address: AddressLine(u.Address),
		Notice:  AdvisoryNotice(),
	}
}

func (r Renderer) RenderAll(users []domain.User) []Card {
	cards := make([]Card, 0, len(users))
	for _, u := range users {
		cards = append(cards, r.Render(u))
	}
	return cards
}

// AddressLine keeps empty parts so the layout is the same for every user.
func AddressLine(a domain.Address) string {
	return strings.Join([]string{a.Street.String(), a.Suite.String(), a.City.String(), a.Zipcode.String()}, ", ")
}
