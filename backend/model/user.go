package model

import (
	"errors"

	"filedrop/backend/common"

	"gorm.io/gorm"
)

// User represents an account. Sensitive fields are excluded from API
// responses via json tags. Users are never hard-deleted by the core.
type User struct {
	Id          int64  `json:"id" gorm:"primaryKey"`
	Email       string `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password    string `json:"-" gorm:"size:100;not null"`
	DisplayName string `json:"display_name" gorm:"size:50"`
	Role        int    `json:"role" gorm:"type:int;default:1"`
	PlanId      *int64 `json:"plan_id" gorm:"index"`
	CreatedAt   int64  `json:"created_at" gorm:"autoCreateTime"`
}

func (user *User) IsAdmin() bool {
	return user.Role >= common.RoleAdmin
}

func GetUserById(id int64) (*User, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var user User
	if err := DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	if email == "" {
		return nil, errors.New("email is empty")
	}
	var user User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsEmailTaken(email string) bool {
	var count int64
	DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func GetAllUsers(startIdx int, num int) ([]*User, error) {
	var users []*User
	err := DB.Order("id desc").Offset(startIdx).Limit(num).Find(&users).Error
	return users, err
}

func CountUsers() (num int64) {
	DB.Model(&User{}).Count(&num)
	return
}

func (user *User) Insert() error {
	if user.Password != "" {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return DB.Create(user).Error
}

func (user *User) Update(updatePassword bool) error {
	if updatePassword {
		var err error
		user.Password, err = common.Password2Hash(user.Password)
		if err != nil {
			return err
		}
	}
	return DB.Save(user).Error
}

// ValidateAndFill checks the password against the stored hash and loads the
// full record into the receiver on success.
func (user *User) ValidateAndFill() error {
	if user.Email == "" || user.Password == "" {
		return errors.New("email or password is empty")
	}
	password := user.Password
	var stored User
	if err := DB.Where("email = ?", user.Email).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("invalid email or password")
		}
		return err
	}
	if !common.ValidatePasswordAndHash(password, stored.Password) {
		return errors.New("invalid email or password")
	}
	*user = stored
	return nil
}
