package model

const (
	RoleCustomer = "CUSTOMER"
	RoleStaff    = "STAFF"
	RoleAdmin    = "ADMIN"
)

type User struct {
	DTO
	Email        string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Name         string `gorm:"not null" validate:"required" json:"name"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:'CUSTOMER';not null" json:"role"`

	Bookings      []Booking      `gorm:"foreignKey:UserId" json:"-"`
	Notifications []Notification `gorm:"foreignKey:UserId" json:"-"`
}

type RegisterUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"omitempty,min=8"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token          string `json:"token" validate:"required"`
	NewPassword    string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}
