package repository

import (
	"context"

	"leisure-booking-api/internal/domain/order"
	"leisure-booking-api/internal/infra"
	"leisure-booking-api/internal/infra/db"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const query = `
		INSERT INTO orders (id, order_number, email, first_name, last_name, phone, payment_method, coupon_code, discount_cents, total_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	customer := o.Customer()
	_, err := r.db.Exec(ctx, query,
		o.ID(), o.Number(),
		customer.Email, customer.FirstName, customer.LastName, customer.Phone,
		o.PaymentMethod().String(), o.CouponCode(),
		o.DiscountCents(), o.TotalCents(),
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err, pgErrKind(err))
	}
	return nil
}
