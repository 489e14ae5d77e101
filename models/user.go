// models/user.go
package models

// User is the full profile record for a marketplace account. Skills are a
// list in memory; the repository flattens them to the comma-delimited string
// the Realtime Database stores.
type User struct {
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
	ConfigID       string   `json:"config_id"`    // 30-minute scheduling configuration
	ConfigID60     string   `json:"config_id_60"` // 60-minute scheduling configuration
	GrantID        string   `json:"grant_id"`
}

// SupportedDurations lists the meeting lengths the platform sells, in minutes.
var SupportedDurations = []int{30, 60}

// ConfigIDForDuration maps a meeting duration to the scheduling configuration
// created for it. The second return is false when no configuration exists yet
// for that duration, or the duration is not offered at all.
func (u *User) ConfigIDForDuration(minutes int) (string, bool) {
	var id string
	switch minutes {
	case 30:
		id = u.ConfigID
	case 60:
		id = u.ConfigID60
	default:
		return "", false
	}
	if id == "" {
		return "", false
	}
	return id, true
}

// SetConfigIDForDuration stores a freshly created configuration id under the
// matching duration slot. Unknown durations are ignored.
func (u *User) SetConfigIDForDuration(minutes int, configID string) {
	switch minutes {
	case 30:
		u.ConfigID = configID
	case 60:
		u.ConfigID60 = configID
	}
}

// NewDefaultUser builds the empty profile written on first login.
func NewDefaultUser(uid, name, email, picture string) User {
	return User{
		UID:     uid,
		Name:    name,
		Email:   email,
		Picture: picture,
		Skills:  []string{},
	}
}
