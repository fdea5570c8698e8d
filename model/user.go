package model

import "time"

// User 用户模型：email 作为登录标识，全表唯一。
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Email        string    `gorm:"unique;not null;size:255" json:"email"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	Phone        *string   `gorm:"size:32" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
