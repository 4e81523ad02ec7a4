// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package elevation_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/quillpad/internal/platform/access"
	"github.com/taibuivan/quillpad/internal/platform/apperr"
	"github.com/taibuivan/quillpad/internal/platform/notify"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/elevation"
	"github.com/taibuivan/quillpad/pkg/uuid"
)

// # Fakes

// authorityStore keeps accounts, requests and email claims behind one lock,
// the way a single Postgres transaction serializes them.
type authorityStore struct {
	mu       sync.Mutex
	claims   map[string]string
	requests map[string]*elevation.Request
	accounts map[string]*account.Account
	resolved []string
}

func newAuthorityStore() *authorityStore {
	return &authorityStore{
		claims:   make(map[string]string),
		requests: make(map[string]*elevation.Request),
		accounts: make(map[string]*account.Account),
	}
}

func (store *authorityStore) Create(_ context.Context, request *elevation.Request) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, held := store.claims[request.Email]; held {
		return apperr.Conflict("Email is already registered or has a pending request")
	}
	store.claims[request.Email] = request.ID

	request.Status = elevation.StatusPending
	request.CreatedAt = time.Now()
	copied := *request
	store.requests[request.ID] = &copied
	return nil
}

func (store *authorityStore) FindByID(_ context.Context, id string) (*elevation.Request, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	request, ok := store.requests[id]
	if !ok {
		return nil, apperr.NotFound("Admin request")
	}
	copied := *request
	return &copied, nil
}

func (store *authorityStore) List(_ context.Context) ([]*elevation.Request, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	out := make([]*elevation.Request, 0, len(store.requests))
	for _, request := range store.requests {
		copied := *request
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (store *authorityStore) Resolve(_ context.Context, resolution elevation.Resolution) (*elevation.Request, *account.Account, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.resolved = append(store.resolved, resolution.RequestID)
	request, ok := store.requests[resolution.RequestID]
	if !ok {
		return nil, nil, apperr.NotFound("Admin request")
	}
	if request.Status != elevation.StatusPending {
		return nil, nil, apperr.InvalidState("Admin request is already " + string(request.Status))
	}

	delete(store.claims, request.Email)

	var created *account.Account
	if resolution.Decision == elevation.StatusAccepted {
		created = &account.Account{
			ID:           resolution.AccountID,
			Name:         request.Name,
			Email:        request.Email,
			PasswordHash: request.PasswordHash,
			Role:         sec.RoleElevated,
		}
		store.accounts[created.ID] = created
		store.claims[request.Email] = created.ID
	}

	now := time.Now()
	request.Status = resolution.Decision
	request.ResolvedAt = &now
	request.ResolvedBy = &resolution.ResolvedBy

	copied := *request
	return &copied, created, nil
}

func (store *authorityStore) accountsByEmail(email string) []*account.Account {
	store.mu.Lock()
	defer store.mu.Unlock()

	var out []*account.Account
	for _, acc := range store.accounts {
		if acc.Email == email {
			out = append(out, acc)
		}
	}
	return out
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (publisher *recordingPublisher) Publish(message notify.Message) {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	publisher.messages = append(publisher.messages, message)
}

func (publisher *recordingPublisher) kinds() []notify.Kind {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	kinds := make([]notify.Kind, len(publisher.messages))
	for i, message := range publisher.messages {
		kinds[i] = message.Kind
	}
	return kinds
}

var (
	supreme  = access.Actor{ID: "root", Role: sec.RoleSupreme}
	elevated = access.Actor{ID: "bob", Role: sec.RoleElevated}
)

func newService() (*elevation.Service, *authorityStore, *recordingPublisher) {
	store := newAuthorityStore()
	publisher := &recordingPublisher{}
	return elevation.NewService(store, publisher, "root@quillpad.app"), store, publisher
}

// # Lifecycle Scenarios

/*
TestAcceptCreatesElevatedAccount submits and accepts a request, then checks the created account.
*/
func TestAcceptCreatesElevatedAccount(t *testing.T) {
	service, store, publisher := newService()
	ctx := context.Background()

	submitted, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, elevation.StatusPending, submitted.Status)
	assert.True(t, sec.CheckPasswordHash("pw", submitted.PasswordHash))

	resolved, err := service.Resolve(ctx, supreme, submitted.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, elevation.StatusAccepted, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, supreme.ID, *resolved.ResolvedBy)

	accounts := store.accountsByEmail("ann@x.com")
	require.Len(t, accounts, 1)
	assert.Equal(t, sec.RoleElevated, accounts[0].Role)
	assert.Equal(t, submitted.PasswordHash, accounts[0].PasswordHash)

	assert.Equal(t, []notify.Kind{notify.KindRequestSubmitted, notify.KindRequestAccepted}, publisher.kinds())
}

/*
TestResolveTwiceIsInvalidState checks that a resolved request never transitions again.
*/
func TestResolveTwiceIsInvalidState(t *testing.T) {
	service, store, _ := newService()
	ctx := context.Background()

	submitted, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)
	_, err = service.Resolve(ctx, supreme, submitted.ID, "accepted")
	require.NoError(t, err)

	for _, decision := range []string{"rejected", "accepted"} {
		_, err = service.Resolve(ctx, supreme, submitted.ID, decision)
		assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState), "decision=%s", decision)
	}

	assert.Len(t, store.accountsByEmail("ann@x.com"), 1)

	stored, err := store.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, elevation.StatusAccepted, stored.Status)
}

/*
TestRejectIsTerminalAndReleasesEmail verifies rejection creates nothing and frees the address.
*/
func TestRejectIsTerminalAndReleasesEmail(t *testing.T) {
	service, store, publisher := newService()
	ctx := context.Background()

	submitted, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	resolved, err := service.Resolve(ctx, supreme, submitted.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, elevation.StatusRejected, resolved.Status)
	assert.Empty(t, store.accountsByEmail("ann@x.com"))

	_, err = service.Resolve(ctx, supreme, submitted.ID, "accepted")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState))
	assert.Empty(t, store.accountsByEmail("ann@x.com"))

	_, err = service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw2"})
	assert.NoError(t, err)

	assert.Contains(t, publisher.kinds(), notify.KindRequestRejected)
}

/*
TestConcurrentSubmitSameEmail verifies exactly one of many concurrent submissions wins.
*/
func TestConcurrentSubmitSameEmail(t *testing.T) {
	service, _, _ := newService()

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.Submit(context.Background(), elevation.SubmitInput{
				Name:     fmt.Sprintf("Ann %d", i),
				Email:    "ann@x.com",
				Password: "pw",
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperr.HasCode(err, apperr.CodeConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

/*
TestConcurrentResolve verifies that racing resolvers create at most one account.
*/
func TestConcurrentResolve(t *testing.T) {
	service, store, _ := newService()
	ctx := context.Background()

	submitted, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	const resolvers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Resolve(ctx, supreme, submitted.ID, "accepted")
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Len(t, store.accountsByEmail("ann@x.com"), 1)
}

// # Guards & Validation

/*
TestResolveRequiresSupreme checks that elevated and standard actors are refused.
*/
func TestResolveRequiresSupreme(t *testing.T) {
	service, store, _ := newService()
	ctx := context.Background()

	submitted, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ann@x.com", Password: "pw"})
	require.NoError(t, err)

	for _, actor := range []access.Actor{elevated, {ID: "u", Role: sec.RoleStandard}, {ID: "x", Role: "Superadmin"}} {
		_, err := service.Resolve(ctx, actor, submitted.ID, "accepted")
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden), "role=%s", actor.Role)

		_, err = service.List(ctx, actor)
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden), "role=%s", actor.Role)
	}

	stored, err := store.FindByID(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, elevation.StatusPending, stored.Status)
}

/*
TestResolveErrors covers unknown decisions and missing requests.
*/
func TestResolveErrors(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	for _, decision := range []string{"pending", "ACCEPTED", ""} {
		_, err := service.Resolve(ctx, supreme, "any", decision)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "decision=%q", decision)
	}

	_, err := service.Resolve(ctx, supreme, uuid.New(), "accepted")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestResolve_MalformedIDIsNotFound answers NotFound for an id that cannot name a
request, without reaching the store.
*/
func TestResolve_MalformedIDIsNotFound(t *testing.T) {
	service, store, publisher := newService()
	ctx := context.Background()

	for _, id := range []string{"not-a-uuid", "abc", "", "1 OR 1=1"} {
		_, err := service.Resolve(ctx, supreme, id, "accepted")
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), "id=%q", id)
	}

	assert.Empty(t, store.resolved)
	assert.Empty(t, publisher.kinds())
}

/*
TestSubmitValidation verifies empty fields are rejected before anything is stored.
*/
func TestSubmitValidation(t *testing.T) {
	service, store, publisher := newService()

	_, err := service.Submit(context.Background(), elevation.SubmitInput{Name: " ", Email: "", Password: ""})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 4)

	requests, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, requests)
	assert.Empty(t, publisher.kinds())
}

/*
TestSubmitNormalizesEmail verifies case variants of one address conflict.
*/
func TestSubmitNormalizesEmail(t *testing.T) {
	service, _, _ := newService()
	ctx := context.Background()

	first, err := service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: " Ann@X.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", first.Email)

	_, err = service.Submit(ctx, elevation.SubmitInput{Name: "Ann", Email: "ANN@x.com", Password: "pw"})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
}

/*
TestParseDecision accepts only terminal statuses.
*/
func TestParseDecision(t *testing.T) {
	status, ok := elevation.ParseDecision("accepted")
	assert.True(t, ok)
	assert.True(t, status.Terminal())

	_, ok = elevation.ParseDecision("pending")
	assert.False(t, ok)
	assert.False(t, elevation.StatusPending.Terminal())
}
