package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
)

type recordedMessage struct {
	to   string
	body string
}

type recordingSender struct {
	sent []recordedMessage
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, body string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, recordedMessage{to: to, body: body})
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func (r *fakeUserRepo) Create(context.Context, *identity.User) error { return nil }
func (r *fakeUserRepo) Update(context.Context, *identity.User) error { return nil }
func (r *fakeUserRepo) FindByEmail(context.Context, string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (r *fakeUserRepo) FindAll(context.Context, identity.UserFilter) ([]*identity.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) CountByRole(context.Context, identity.Role) (int64, error) { return 0, nil }
func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func setup(t *testing.T) (*OrderNotifier, *recordingSender, *identity.User, *identity.User, *order.Order) {
	t.Helper()

	seller, err := identity.NewUser("Acme Wholesale", "ops@acme.example", "s3cret-pass", "+15550000", "", identity.RoleSeller)
	require.NoError(t, err)
	retailer, err := identity.NewUser("Corner Shop", "buy@corner.example", "s3cret-pass", "+15550100", "", identity.RoleRetailer)
	require.NoError(t, err)

	o, err := order.NewOrder("ORD-2026-00007", retailer.ID, seller.ID, uuid.New(),
		"Bulk Rice 25kg", "bag", 10, decimal.NewFromInt(100), "")
	require.NoError(t, err)

	sender := &recordingSender{}
	repo := &fakeUserRepo{users: map[uuid.UUID]*identity.User{
		seller.ID:   seller,
		retailer.ID: retailer,
	}}
	return NewOrderNotifier(repo, sender, zap.NewNop()), sender, seller, retailer, o
}

func TestOrderNotifierPlacedNotifiesRetailer(t *testing.T) {
	notifier, sender, _, retailer, o := setup(t)

	err := notifier.Handle(context.Background(), order.NewOrderPlacedEvent(o))
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, retailer.Phone, sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "ORD-2026-00007")
	assert.Contains(t, sender.sent[0].body, "Bulk Rice 25kg")
}

func TestOrderNotifierStatusChangeNotifiesRetailer(t *testing.T) {
	notifier, sender, _, retailer, o := setup(t)

	require.NoError(t, o.TransitionTo(order.StatusShipped))
	evt := order.NewOrderStatusChangedEvent(o, order.StatusOrdered, order.StatusShipped)

	require.NoError(t, notifier.Handle(context.Background(), evt))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, retailer.Phone, sender.sent[0].to)
	assert.Contains(t, sender.sent[0].body, "Shipped")
}

func TestOrderNotifierSwallowsSendFailures(t *testing.T) {
	notifier, sender, _, _, o := setup(t)
	sender.err = shared.ErrDependencyUnavailable

	// Transport failure never propagates to the publisher
	assert.NoError(t, notifier.Handle(context.Background(), order.NewOrderPlacedEvent(o)))
}

func TestOrderNotifierSkipsMissingPhone(t *testing.T) {
	notifier, sender, _, retailer, o := setup(t)
	retailer.Phone = ""

	require.NoError(t, notifier.Handle(context.Background(), order.NewOrderPlacedEvent(o)))
	assert.Empty(t, sender.sent)
}

func TestOrderNotifierEventTypes(t *testing.T) {
	notifier, _, _, _, _ := setup(t)
	assert.ElementsMatch(t,
		[]string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged},
		notifier.EventTypes(),
	)
}
