// File: database/repository/user/transform.go
package userRepo

import (
	"strings"

	"uprocket/models"
)

// storedUser is the Realtime Database shape of a user record: identical to
// models.User except skills are one comma-delimited string. The conversion
// lives here so nothing outside the repository ever sees the flattened form.
type storedUser struct {
	UID            string  `json:"uid"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Title          string  `json:"title"`
	Picture        string  `json:"picture"`
	Website        string  `json:"website"`
	Location       string  `json:"location"`
	Timezone       string  `json:"timezone"`
	LookingForWork bool    `json:"looking_for_work"`
	Skills         string  `json:"skills"`
	SuccessRate    float64 `json:"success_rate"`
	About          string  `json:"about"`
	ConfigID       string  `json:"config_id"`
	ConfigID60     string  `json:"config_id_60"`
	GrantID        string  `json:"grant_id"`
}

// flatten serializes the skills list into the stored comma-delimited form.
// Order is preserved and duplicates pass through unchanged.
func flatten(u models.User) storedUser {
	return storedUser{
		UID:            u.UID,
		Name:           u.Name,
		Email:          u.Email,
		Title:          u.Title,
		Picture:        u.Picture,
		Website:        u.Website,
		Location:       u.Location,
		Timezone:       u.Timezone,
		LookingForWork: u.LookingForWork,
		Skills:         strings.Join(u.Skills, ","),
		SuccessRate:    u.SuccessRate,
		About:          u.About,
		ConfigID:       u.ConfigID,
		ConfigID60:     u.ConfigID60,
		GrantID:        u.GrantID,
	}
}

// expand splits the stored skills string back into a list. An absent or
// empty field expands to an empty list, never nil-with-one-empty-entry.
func expand(s storedUser) models.User {
	skills := []string{}
	if s.Skills != "" {
		skills = strings.Split(s.Skills, ",")
	}
	return models.User{
		UID:            s.UID,
		Name:           s.Name,
		Email:          s.Email,
		Title:          s.Title,
		Picture:        s.Picture,
		Website:        s.Website,
		Location:       s.Location,
		Timezone:       s.Timezone,
		LookingForWork: s.LookingForWork,
		Skills:         skills,
		SuccessRate:    s.SuccessRate,
		About:          s.About,
		ConfigID:       s.ConfigID,
		ConfigID60:     s.ConfigID60,
		GrantID:        s.GrantID,
	}
}
