package alerts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/internal/stock"
	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

type fakePermissions struct {
	mu       sync.Mutex
	current  enums.Permission
	requests int
	block    chan struct{}
}

func (f *fakePermissions) Current(ctx context.Context) (enums.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakePermissions) Request(ctx context.Context) (enums.Permission, error) {
	f.mu.Lock()
	f.requests++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	f.current = enums.PermissionGranted
	f.mu.Unlock()
	return enums.PermissionGranted, nil
}

type fakeHandle struct{}

func (fakeHandle) Close() error { return nil }

type fakeNotifier struct {
	mu         sync.Mutex
	dispatched []Notification
	err        error
}

func (f *fakeNotifier) Dispatch(ctx context.Context, notification Notification) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.dispatched = append(f.dispatched, notification)
	return fakeHandle{}, nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dispatched)
}

func (f *fakeNotifier) last(t *testing.T) Notification {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.dispatched) == 0 {
		t.Fatal("expected at least one dispatch")
	}
	return f.dispatched[len(f.dispatched)-1]
}

type fakeEvents struct {
	mu      sync.Mutex
	events  []models.AlertEvent
	lastErr error
}

func (f *fakeEvents) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeEvents) Create(ctx context.Context, event *models.AlertEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEvents) LastSent(ctx context.Context, productID int64) (*models.AlertEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastErr != nil {
		return nil, f.lastErr
	}
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].ProductID == productID {
			event := f.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

type engineParams struct {
	permissions *fakePermissions
	notifier    *fakeNotifier
	events      *fakeEvents
	cooldown    time.Duration
	now         func() time.Time
}

func newEngine(t *testing.T, params engineParams) Service {
	t.Helper()
	if params.permissions == nil {
		params.permissions = &fakePermissions{current: enums.PermissionGranted}
	}
	if params.notifier == nil {
		params.notifier = &fakeNotifier{}
	}
	if params.events == nil {
		params.events = &fakeEvents{}
	}
	svc, err := NewService(ServiceParams{
		Permissions: params.permissions,
		Notifier:    params.notifier,
		Repo:        params.events,
		Cooldown:    params.cooldown,
		MaxNamed:    3,
		Now:         params.now,
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_SendNotificationDeniedIsSilent(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{
		permissions: &fakePermissions{current: enums.PermissionDenied},
		notifier:    notifier,
	})

	handle := svc.SendNotification(context.Background(), "hello", Options{})
	if handle != nil {
		t.Fatal("denied permission must return a nil handle")
	}
	if notifier.count() != 0 {
		t.Fatalf("denied permission must not reach the notifier, got %d dispatches", notifier.count())
	}
}

func TestService_SendNotificationAppliesAssetDefaults(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{notifier: notifier})

	if handle := svc.SendNotification(context.Background(), "hello", Options{Body: "world"}); handle == nil {
		t.Fatal("expected a handle for a granted dispatch")
	}
	got := notifier.last(t)
	if got.Icon != DefaultIcon || got.Badge != DefaultBadge {
		t.Fatalf("expected default assets, got %+v", got)
	}
	if got.Body != "world" {
		t.Fatalf("expected caller body, got %q", got.Body)
	}
}

func TestService_SendNotificationCallerOptionsWin(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{notifier: notifier})

	svc.SendNotification(context.Background(), "hello", Options{Icon: "/custom.png"})
	got := notifier.last(t)
	if got.Icon != "/custom.png" {
		t.Fatalf("caller icon must override the default, got %q", got.Icon)
	}
	if got.Badge != DefaultBadge {
		t.Fatalf("unset badge must keep the default, got %q", got.Badge)
	}
}

func TestService_SendNotificationDispatchFailureReturnsNil(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("platform rejected")}
	svc := newEngine(t, engineParams{notifier: notifier})

	if handle := svc.SendNotification(context.Background(), "hello", Options{}); handle != nil {
		t.Fatal("dispatch failure must return a nil handle, not an error")
	}
}

func TestService_SendLowStockAlertEmptyBatch(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{notifier: notifier})

	if handle := svc.SendLowStockAlert(context.Background(), nil); handle != nil {
		t.Fatal("empty batch must be a no-op")
	}
	if notifier.count() != 0 {
		t.Fatalf("empty batch must not dispatch, got %d", notifier.count())
	}
}

func TestService_SendLowStockAlertSingleProduct(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{notifier: notifier})

	handle := svc.SendLowStockAlert(context.Background(), []stock.Level{
		{ProductID: 1, Name: "Milk", Stock: 2},
	})
	if handle == nil {
		t.Fatal("expected a dispatched alert")
	}
	got := notifier.last(t)
	if !strings.Contains(got.Title, "Milk") {
		t.Fatalf("title must name the product, got %q", got.Title)
	}
	if !strings.Contains(got.Body, "2") {
		t.Fatalf("body must carry the stock level, got %q", got.Body)
	}
}

func TestService_SendLowStockAlertRecordsSnapshots(t *testing.T) {
	events := &fakeEvents{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newEngine(t, engineParams{
		events:   events,
		cooldown: time.Hour,
		now:      func() time.Time { return fixed },
	})

	svc.SendLowStockAlert(context.Background(), []stock.Level{
		{ProductID: 1, Name: "Milk", Stock: 2},
		{ProductID: 2, Name: "Flour", Stock: 1},
	})

	events.mu.Lock()
	defer events.mu.Unlock()
	if len(events.events) != 2 {
		t.Fatalf("expected 2 recorded snapshots, got %d", len(events.events))
	}
	if !events.events[0].SentAt.Equal(fixed) {
		t.Fatalf("expected snapshot at %v, got %v", fixed, events.events[0].SentAt)
	}
}

func TestService_CooldownSuppressesRepeatAlerts(t *testing.T) {
	notifier := &fakeNotifier{}
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return current }
	svc := newEngine(t, engineParams{
		notifier: notifier,
		cooldown: time.Hour,
		now:      now,
	})
	low := []stock.Level{{ProductID: 1, Name: "Milk", Stock: 2}}

	if svc.SendLowStockAlert(context.Background(), low) == nil {
		t.Fatal("first alert must dispatch")
	}
	if svc.SendLowStockAlert(context.Background(), low) != nil {
		t.Fatal("repeat within the cool-down must be suppressed")
	}
	if notifier.count() != 1 {
		t.Fatalf("expected exactly 1 dispatch, got %d", notifier.count())
	}

	current = current.Add(time.Hour)
	if svc.SendLowStockAlert(context.Background(), low) == nil {
		t.Fatal("alert past the cool-down must dispatch again")
	}
}

func TestService_CooldownDropsOnlyRecentlyAlertedProducts(t *testing.T) {
	notifier := &fakeNotifier{}
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newEngine(t, engineParams{
		notifier: notifier,
		cooldown: time.Hour,
		now:      func() time.Time { return current },
	})

	svc.SendLowStockAlert(context.Background(), []stock.Level{{ProductID: 1, Name: "Milk", Stock: 2}})
	svc.SendLowStockAlert(context.Background(), []stock.Level{
		{ProductID: 1, Name: "Milk", Stock: 2},
		{ProductID: 2, Name: "Flour", Stock: 1},
	})

	if notifier.count() != 2 {
		t.Fatalf("expected 2 dispatches, got %d", notifier.count())
	}
	second := notifier.last(t)
	if strings.Contains(second.Body, "Milk") {
		t.Fatalf("cooled-down product must not reappear, got %q", second.Body)
	}
	if !strings.Contains(second.Title, "Flour") && !strings.Contains(second.Body, "Flour") {
		t.Fatalf("fresh product must be alerted, got %+v", second)
	}
}

func TestService_UnreadableSnapshotDoesNotSwallowAlert(t *testing.T) {
	notifier := &fakeNotifier{}
	events := &fakeEvents{lastErr: errors.New("disk read failed")}
	svc := newEngine(t, engineParams{
		notifier: notifier,
		events:   events,
		cooldown: time.Hour,
	})

	if svc.SendLowStockAlert(context.Background(), []stock.Level{{ProductID: 1, Name: "Milk", Stock: 2}}) == nil {
		t.Fatal("storage failure on the snapshot read must not suppress the alert")
	}
}

func TestService_RequestPermissionCollapsesConcurrentRequests(t *testing.T) {
	permissions := &fakePermissions{current: enums.PermissionDefault, block: make(chan struct{})}
	svc := newEngine(t, engineParams{permissions: permissions})

	var wg sync.WaitGroup
	results := make([]enums.Permission, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.RequestPermission(context.Background())
			if err != nil {
				t.Errorf("unexpected request error: %v", err)
			}
			results[i] = result
		}(i)
	}

	// Let the goroutines pile up on the in-flight request before the
	// platform answers.
	time.Sleep(50 * time.Millisecond)
	close(permissions.block)
	wg.Wait()

	permissions.mu.Lock()
	requests := permissions.requests
	permissions.mu.Unlock()
	if requests != 1 {
		t.Fatalf("expected a single platform prompt, got %d", requests)
	}
	for i, result := range results {
		if result != enums.PermissionGranted {
			t.Fatalf("caller %d got %q, want granted", i, result)
		}
	}
}

func TestService_EndToEndSaleCrossesThreshold(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newEngine(t, engineParams{notifier: notifier})

	// A sale of 3 against stock 10 derives 7; threshold 8 flags it low.
	levels, _ := stock.Fold(
		[]models.Product{{ID: 1, Name: "Milk", Stock: 0}},
		[]models.Transaction{
			{ID: 1, ProductID: 1, ProductName: "Milk", Type: enums.TransactionTypeRestock, Quantity: 10, OldStock: 0, NewStock: 10, Timestamp: 1},
			{ID: 2, ProductID: 1, ProductName: "Milk", Type: enums.TransactionTypeSale, Quantity: 3, OldStock: 10, NewStock: 7, Timestamp: 2},
		},
	)
	low := make([]stock.Level, 0, 1)
	for _, level := range levels {
		if level.Stock < 8 {
			low = append(low, level)
		}
	}

	if svc.SendLowStockAlert(context.Background(), low) == nil {
		t.Fatal("expected a dispatched alert")
	}
	got := notifier.last(t)
	if !strings.Contains(got.Body, "7") {
		t.Fatalf("single-product alert body must carry the derived stock 7, got %q", got.Body)
	}
}
