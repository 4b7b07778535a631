package repository

import (
	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByUserID(userID uint) ([]model.Address, error)
	FindByIDForUser(addressID, userID uint) (*model.Address, error)
	Update(address *model.Address) error
	Delete(userID, addressID uint) (int64, error)
	ClearDefault(userID uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	if err := r.db.Create(address).Error; err != nil {
		logger.Error("Failed to create address in database", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) FindByUserID(userID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		logger.Error("Failed to find addresses by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) FindByIDForUser(addressID, userID uint) (*model.Address, error) {
	var address model.Address
	err := r.db.Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find address by ID in database", err, map[string]interface{}{
				"address_id": addressID,
				"user_id":    userID,
			})
		}
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Update(address *model.Address) error {
	if err := r.db.Save(address).Error; err != nil {
		logger.Error("Failed to update address in database", err, map[string]interface{}{
			"address_id": address.ID,
			"user_id":    address.UserID,
		})
		return err
	}
	return nil
}

func (r *addressRepository) Delete(userID, addressID uint) (int64, error) {
	res := r.db.Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.Address{})
	if res.Error != nil {
		logger.Error("Failed to delete address from database", res.Error, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ClearDefault unsets the default flag on all of the user's addresses so a
// new default can be assigned.
func (r *addressRepository) ClearDefault(userID uint) error {
	if err := r.db.Model(&model.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error; err != nil {
		logger.Error("Failed to clear default address in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}
