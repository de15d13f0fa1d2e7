package services

import (
	"errors"
	"time"

	"storefront/entity"

	"gorm.io/gorm"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid_or_conflict")
)

// ----- payment outcome transitions: Pending Payment -> Paid | Cancelled | Expired -----

// ConfirmPayment marks the order paid. For the wallet provider the balance
// is debited in the same transaction; mobile-money providers confirm via
// their callback with an external reference.
func (s *CheckoutService) ConfirmPayment(ref, externalRef string) error {
	o, err := s.Repo.GetByReference(ref)
	if err != nil {
		return err
	}
	p, err := s.Repo.GetPayment(o.ID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, s.Status.PendingPayment, s.Status.Paid)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}

		if p.Provider == entity.ProviderWallet {
			if o.UserID == nil {
				return ErrWalletRequiresAccount
			}
			if err := s.Repo.DebitWallet(tx, *o.UserID, p.Amount); err != nil {
				return ErrInsufficientWallet
			}
		}

		now := time.Now()
		return tx.Model(&entity.Payment{}).Where("id = ?", p.ID).
			Updates(map[string]any{
				"payment_status_id": s.Status.PaySuccess,
				"external_ref":      externalRef,
				"paid_at":           &now,
			}).Error
	})
}

func (s *CheckoutService) CancelOrder(sessionKey string, userID *uint, ref string) error {
	o, err := s.Repo.GetByReference(ref)
	if err != nil {
		return err
	}
	if !orderBelongsTo(o, sessionKey, userID) {
		return ErrForbidden
	}
	return s.transitionWithFailedPayment(o, s.Status.Cancelled)
}

// CookCancel lets the cook reject a pending order from the partner side.
func (s *CheckoutService) CookCancel(cookID uint, ref string) error {
	o, err := s.Repo.GetByReference(ref)
	if err != nil {
		return err
	}
	if o.CookID != cookID {
		return ErrForbidden
	}
	return s.transitionWithFailedPayment(o, s.Status.Cancelled)
}

// ExpireOrder is the retry-timeout path for orders never paid.
func (s *CheckoutService) ExpireOrder(ref string) error {
	o, err := s.Repo.GetByReference(ref)
	if err != nil {
		return err
	}
	return s.transitionWithFailedPayment(o, s.Status.Expired)
}

func (s *CheckoutService) transitionWithFailedPayment(o *entity.Order, to uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, s.Status.PendingPayment, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidTransition
		}
		if p, err := s.Repo.GetPayment(o.ID); err == nil {
			return s.Repo.UpdatePaymentStatus(tx, p.ID, s.Status.PayFailed)
		}
		return nil
	})
}
