// models/contractor.go
package models

// Contractor is the public view of a user who is accepting work. Grant and
// configuration ids never leave the server, so they have no place here.
type Contractor struct {
	UID            string   `json:"uid"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Title          string   `json:"title"`
	Picture        string   `json:"picture"`
	Website        string   `json:"website"`
	Location       string   `json:"location"`
	Timezone       string   `json:"timezone"`
	LookingForWork bool     `json:"looking_for_work"`
	Skills         []string `json:"skills"`
	SuccessRate    float64  `json:"success_rate"`
	About          string   `json:"about"`
}

// Contractor derives the sanitized view from a full user record.
func (u *User) Contractor() Contractor {
	return Contractor{
		UID:            u.UID,
		Name:           u.Name,
		Email:          u.Email,
		Title:          u.Title,
		Picture:        u.Picture,
		Website:        u.Website,
		Location:       u.Location,
		Timezone:       u.Timezone,
		LookingForWork: u.LookingForWork,
		Skills:         u.Skills,
		SuccessRate:    u.SuccessRate,
		About:          u.About,
	}
}
