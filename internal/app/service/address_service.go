package service

import (
	"errors"

	"github.com/neonstore/neonstore-backend/internal/app/model"
	"github.com/neonstore/neonstore-backend/internal/app/repository"
	"github.com/neonstore/neonstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressService interface {
	ListAddresses(userID uint) ([]model.Address, error)
	GetAddress(userID, addressID uint) (*model.Address, error)
	CreateAddress(address *model.Address) error
	UpdateAddress(userID uint, address *model.Address) error
	DeleteAddress(userID, addressID uint) error
	SetDefaultAddress(userID, addressID uint) error
}

type addressService struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressService{
		addressRepo: addressRepo,
	}
}

func (s *addressService) ListAddresses(userID uint) ([]model.Address, error) {
	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to list addresses", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return addresses, nil
}

func (s *addressService) GetAddress(userID, addressID uint) (*model.Address, error) {
	address, err := s.addressRepo.FindByIDForUser(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (s *addressService) CreateAddress(address *model.Address) error {
	// First address becomes the default automatically.
	existing, err := s.addressRepo.FindByUserID(address.UserID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		address.IsDefault = true
	} else if address.IsDefault {
		if err := s.addressRepo.ClearDefault(address.UserID); err != nil {
			return err
		}
	}

	if err := s.addressRepo.Create(address); err != nil {
		logger.Error("Failed to create address", err, map[string]interface{}{
			"user_id": address.UserID,
		})
		return err
	}

	logger.Info("Address created", map[string]interface{}{
		"address_id": address.ID,
		"user_id":    address.UserID,
	})
	return nil
}

func (s *addressService) UpdateAddress(userID uint, address *model.Address) error {
	existing, err := s.addressRepo.FindByIDForUser(address.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}

	address.UserID = userID
	address.CreatedAt = existing.CreatedAt
	if address.IsDefault && !existing.IsDefault {
		if err := s.addressRepo.ClearDefault(userID); err != nil {
			return err
		}
	}

	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to update address", err, map[string]interface{}{
			"address_id": address.ID,
			"user_id":    userID,
		})
		return err
	}
	return nil
}

func (s *addressService) DeleteAddress(userID, addressID uint) error {
	rows, err := s.addressRepo.Delete(userID, addressID)
	if err != nil {
		logger.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		return err
	}
	if rows == 0 {
		return ErrAddressNotFound
	}

	logger.Info("Address deleted", map[string]interface{}{
		"address_id": addressID,
		"user_id":    userID,
	})
	return nil
}

func (s *addressService) SetDefaultAddress(userID, addressID uint) error {
	address, err := s.addressRepo.FindByIDForUser(addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}

	if err := s.addressRepo.ClearDefault(userID); err != nil {
		return err
	}

	address.IsDefault = true
	if err := s.addressRepo.Update(address); err != nil {
		logger.Error("Failed to set default address", err, map[string]interface{}{
			"address_id": addressID,
			"user_id":    userID,
		})
		return err
	}
	return nil
}
