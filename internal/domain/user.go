package domain

import "time"

// Session is the authenticated driver context. It is established at
// sign-in and passed explicitly into every operation that acts on the
// driver's behalf; business logic never reads it from ambient storage.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"-"`
}

// Authenticated reports whether the session carries a resolvable user.
func (s Session) Authenticated() bool { return s.UserID != "" }

// User is the upstream account record.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Driver is the upstream driver record linked to a user account.
type Driver struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	BirthDate time.Time `json:"birthDate,omitempty"`
	Address   string    `json:"address,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
}

// Vehicle is the truck assigned to the driver. Its id is required when
// filing repair requests.
type Vehicle struct {
	ID           string `json:"_id"`
	LicensePlate string `json:"licensePlate"`
	Brand        string `json:"brand,omitempty"`
	Model        string `json:"model,omitempty"`
}

// DriverVehicle is the upstream driver+vehicle detail payload.
type DriverVehicle struct {
	Driver  Driver  `json:"driver"`
	Vehicle Vehicle `json:"vehicle"`
}

// Profile is the cached driver profile: account detail plus the
// assigned driver and vehicle records. Write-through cached per user;
// the upstream stays authoritative.
type Profile struct {
	User    User    `json:"user"`
	Driver  Driver  `json:"driver"`
	Vehicle Vehicle `json:"vehicle"`
}
