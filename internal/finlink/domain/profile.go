package domain

import (
	"net/mail"
	"strings"
)

// NotificationPreferences are the alert channels a user has switched on.
type NotificationPreferences struct {
	Email             bool `json:"email"`
	Push              bool `json:"push"`
	BudgetAlerts      bool `json:"budget_alerts"`
	TransactionAlerts bool `json:"transaction_alerts"`
}

// DefaultNotificationPreferences is what a fresh session starts with.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		Email:             true,
		Push:              false,
		BudgetAlerts:      true,
		TransactionAlerts: true,
	}
}

// PreferencesUpdate switches individual channels. Nil fields are left alone.
type PreferencesUpdate struct {
	Email             *bool `json:"email,omitempty"`
	Push              *bool `json:"push,omitempty"`
	BudgetAlerts      *bool `json:"budget_alerts,omitempty"`
	TransactionAlerts *bool `json:"transaction_alerts,omitempty"`
}

// Apply returns p with the set fields of u written over it.
func (u PreferencesUpdate) Apply(p NotificationPreferences) NotificationPreferences {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Push != nil {
		p.Push = *u.Push
	}
	if u.BudgetAlerts != nil {
		p.BudgetAlerts = *u.BudgetAlerts
	}
	if u.TransactionAlerts != nil {
		p.TransactionAlerts = *u.TransactionAlerts
	}
	return p
}

// ProfileUpdate is the personal-information form. Nil fields are left alone.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Validate returns field name to message, or nil when the update is usable.
func (u ProfileUpdate) Validate() map[string]string {
	errs := make(map[string]string)

	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		errs["name"] = requiredReason
	}
	if u.Email != nil {
		switch email := strings.TrimSpace(*u.Email); {
		case email == "":
			errs["email"] = requiredReason
		case !isAddress(email):
			errs["email"] = "must be an email address"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Apply validates u and returns s with the changed fields written over it.
func (u ProfileUpdate) Apply(s Session) (Session, error) {
	if errs := u.Validate(); errs != nil {
		return s, &ValidationError{Fields: errs}
	}
	if u.Name != nil {
		s.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		s.Email = strings.TrimSpace(*u.Email)
	}
	return s, nil
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate reports a *ValidationError when the form is incomplete or the
// new password and its confirmation differ.
func (c PasswordChange) Validate() error {
	errs := make(map[string]string)

	if c.CurrentPassword == "" {
		errs["current_password"] = requiredReason
	}
	if c.NewPassword == "" {
		errs["new_password"] = requiredReason
	}
	if c.NewPassword != c.ConfirmPassword {
		errs["confirm_password"] = "new passwords don't match"
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// isAddress accepts a bare address only, not the "Name <addr>" form.
func isAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
