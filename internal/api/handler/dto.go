package handler

import (
	"time"

	"github.com/d60-Lab/friendgraph/internal/model"
)

// ProfileResponse 用户资料，phone/image 为空时省略
type ProfileResponse struct {
	Login       string  `json:"login"`
	Email       string  `json:"email"`
	CountryCode string  `json:"countryCode"`
	IsPublic    bool    `json:"isPublic"`
	Phone       *string `json:"phone,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type RegisterResponse struct {
	Profile ProfileResponse `json:"profile"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type PostResponse struct {
	ID            string   `json:"id"`
	Content       string   `json:"content"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	CreatedAt     string   `json:"createdAt"`
	LikesCount    int64    `json:"likesCount"`
	DislikesCount int64    `json:"dislikesCount"`
}

type FriendResponse struct {
	Login   string `json:"login"`
	AddedAt string `json:"addedAt"`
}

type CountryResponse struct {
	Name   string `json:"name"`
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Region string `json:"region"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toProfile(u *model.User) ProfileResponse {
	return ProfileResponse{
		Login:       u.Login,
		Email:       u.Email,
		CountryCode: u.CountryCode,
		IsPublic:    u.IsPublic,
		Phone:       u.Phone,
		Image:       u.Image,
	}
}

func toPost(p *model.Post) PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostResponse{
		ID:            p.ID,
		Content:       p.Content,
		Author:        p.Author,
		Tags:          tags,
		CreatedAt:     formatTime(p.CreatedAt),
		LikesCount:    p.LikesCount,
		DislikesCount: p.DislikesCount,
	}
}

func toPosts(posts []*model.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPost(p))
	}
	return out
}

func toFriends(edges []*model.Friend) []FriendResponse {
	out := make([]FriendResponse, 0, len(edges))
	for _, f := range edges {
		out = append(out, FriendResponse{Login: f.FriendLogin, AddedAt: formatTime(f.CreatedAt)})
	}
	return out
}

func toCountry(c *model.Country) CountryResponse {
	return CountryResponse{Name: c.Name, Alpha2: c.Alpha2, Alpha3: c.Alpha3, Region: c.Region}
}

func toCountries(rows []model.Country) []CountryResponse {
	out := make([]CountryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toCountry(&rows[i]))
	}
	return out
}
