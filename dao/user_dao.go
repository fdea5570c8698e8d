package dao

import (
	"usermgmt/model"

	"gorm.io/gorm"
)

type UserDAO struct {
	db *gorm.DB
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.db.Create(user).Error
}

// FindByID 根据 ID 查询用户
func (dao *UserDAO) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := dao.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail 根据 email 查询用户
func (dao *UserDAO) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := dao.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers 返回全部用户
func (dao *UserDAO) ListUsers() ([]model.User, error) {
	var users []model.User
	err := dao.db.Order("id").Find(&users).Error
	return users, err
}

// UpdateFields applies a partial column update to one user row.
func (dao *UserDAO) UpdateFields(id uint64, fields map[string]interface{}) error {
	return dao.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteUser removes the row and reports how many rows were affected,
// so the caller can tell a repeat delete from a real one.
func (dao *UserDAO) DeleteUser(id uint64) (int64, error) {
	res := dao.db.Delete(&model.User{}, id)
	return res.RowsAffected, res.Error
}
