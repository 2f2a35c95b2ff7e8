package models

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// UserInfo mirrors the backend's user record field for field. Nothing is
// dropped or renamed so a persisted copy round-trips exactly.
type UserInfo struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	Nickname  string     `json:"nickname,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt string     `json:"created_at"`
}

func (u *UserInfo) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}

func (u *UserInfo) IsApproved() bool {
	return u != nil && u.Status == UserStatusApproved
}

type RegisterInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginData is the payload of a successful login envelope.
type LoginData struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// ProfileUpdate carries the editable subset of the profile. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}
