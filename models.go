package accounts

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// User is the user model. PasswordHash always holds a bcrypt hash, never
// plaintext, and is excluded from JSON output. Deactivated users keep their
// row (Active=false) so they stay queryable for audit.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	DateOfBirth   *time.Time `bun:"date_of_birth,nullzero" json:"date_of_birth,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	Active        bool       `bun:"is_active" json:"is_active"`
	Avatar        string     `bun:"avatar" json:"avatar,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserDraft carries caller-supplied account fields. Password is plaintext;
// leave it empty on update to keep the stored hash. Avatar carries raw image
// bytes; leave it nil to keep the stored reference.
type UserDraft struct {
	Username    string     `json:"username"`
	Password    string     `json:"password,omitempty"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Role        UserRole   `json:"role,omitempty"`
	Active      *bool      `json:"active,omitempty"`
	Avatar      []byte     `json:"-"`
	AvatarName  string     `json:"-"`
}

// Validate checks the draft fields that apply to both create and update.
// Password presence is enforced by the lifecycle service on create only.
func (d UserDraft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Phone, validation.By(validatePhone)),
		validation.Field(&d.Role, validation.By(validateRole)),
	)
}

// defaultPhoneRegion is assumed for numbers given without a country prefix.
const defaultPhoneRegion = "US"

func validatePhone(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}

	num, err := phonenumbers.Parse(phone, defaultPhoneRegion)
	if err != nil {
		return err
	}

	if !phonenumbers.IsValidNumber(num) {
		return validation.NewError("validation_phone_invalid", "must be a valid phone number")
	}

	return nil
}

func validateRole(value any) error {
	role, _ := value.(UserRole)
	if role == "" {
		return nil
	}

	if _, ok := ParseRole(string(role)); !ok {
		return validation.NewError("validation_role_unknown", "must be a known role")
	}

	return nil
}
