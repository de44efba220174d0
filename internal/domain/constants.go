package domain

type ContextKey string

const UserContextKey ContextKey = "user"

// Roles
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Order lifecycle. The pricing core only ever sets OrderStatusInTransit;
// the remaining states belong to the back-office order board.
const (
	OrderStatusInTransit = "in_transit"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// SyncStatus tracks the optimistic-confirm policy: an order is confirmed
// locally before the remote write settles.
const (
	SyncPending   = "pending"
	SyncConfirmed = "confirmed"
	SyncFailed    = "failed"
)

// Document store collections
const (
	CollectionProducts = "products"
	CollectionUsers    = "users"
	CollectionOrders   = "orders"
	CollectionCarts    = "carts"
	CollectionCoupons  = "coupons"
	CollectionSettings = "settings"
)
