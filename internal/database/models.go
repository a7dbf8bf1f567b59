package database

import "gorm.io/gorm"

// User 表示后台管理账号。页面内容本身不落关系库，
// 这里只保留账号体系（页面见 pagestore 包）。
type User struct {
	gorm.Model
	Username           string `gorm:"uniqueIndex;size:64"`
	PasswordHash       string `gorm:"size:255"`
	MustChangePassword bool   `gorm:"default:false"`
}
