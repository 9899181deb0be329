package services

import (
	"time"

	"github.com/shashiranjanraj/supplyco/app/repositories"
	"github.com/shashiranjanraj/supplyco/pkg/apperr"
	"github.com/shashiranjanraj/supplyco/pkg/notification"
	"github.com/shashiranjanraj/supplyco/pkg/orm"
	"github.com/shashiranjanraj/supplyco/pkg/rbac"
)

// InboxService reads the in-app notification inbox. Records are keyed by the
// recipient's email address, so the caller's identity is resolved to an
// address first.
type InboxService struct {
	customers *repositories.CustomerRepository
	shops     *repositories.ShopRepository
}

func NewInboxService() *InboxService {
	return &InboxService{
		customers: repositories.NewCustomerRepository(),
		shops:     repositories.NewShopRepository(),
	}
}

func (s *InboxService) address(id uint, role string) (string, error) {
	switch role {
	case rbac.RoleCustomer:
		customer, err := s.customers.FindByID(id)
		if err != nil {
			return "", err
		}
		return customer.Email, nil
	case rbac.RoleShop:
		shop, err := s.shops.FindByID(id)
		if err != nil {
			return "", err
		}
		return shop.Email, nil
	default:
		return "", apperr.Forbidden("unknown role %q", role)
	}
}

// List returns one page of the caller's notifications, newest first.
func (s *InboxService) List(id uint, role string, page, perPage int) ([]notification.Record, orm.Pagination, error) {
	addr, err := s.address(id, role)
	if err != nil {
		return nil, orm.Pagination{}, apperr.From(err)
	}

	var records []notification.Record
	p, err := orm.DB().Model(&notification.Record{}).
		Where("address = ?", addr).
		Order("created_at DESC").
		Paginate(page, perPage, &records)
	if err != nil {
		return nil, orm.Pagination{}, apperr.Internal(err)
	}
	return records, p, nil
}

// MarkRead stamps one of the caller's notifications as read.
func (s *InboxService) MarkRead(id uint, role string, recordID uint, at time.Time) error {
	addr, err := s.address(id, role)
	if err != nil {
		return apperr.From(err)
	}

	res := orm.DB().Gorm().
		Model(&notification.Record{}).
		Where("id = ? AND address = ?", recordID, addr).
		Update("read_at", at)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification %d not found", recordID)
	}
	return nil
}
