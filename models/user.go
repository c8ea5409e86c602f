package models

import "github.com/dgrijalva/jwt-go"

type User struct {
	UserID   uint   `json:"userId" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"password,omitempty" gorm:"not null"`
	Image    string `json:"image"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
}

type UserClaims struct {
	UserID uint `json:"userId"`
	jwt.StandardClaims
}
