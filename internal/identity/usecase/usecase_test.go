package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shandysiswandi/otpgate/internal/identity/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/jwt"
	"github.com/shandysiswandi/otpgate/internal/pkg/kvstore"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type fakeDB struct {
	mu        sync.Mutex
	users     map[string]entity.User
	getErr    error
	createErr error
	pingErr   error
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.NewUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.users[user.Email] = entity.User{ID: user.ID, Name: user.Name, Email: user.Email, Password: user.Password}
	return nil
}

func (f *fakeDB) UpdateUserPassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for email, u := range f.users {
		if u.ID == id {
			u.Password = hash
			f.users[email] = u
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

type fakeMessaging struct {
	mu         sync.Mutex
	err        error
	registered []UserRegisteredEvent
	changed    []UserPasswordChangedEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, msg)
	return f.err
}

func (f *fakeMessaging) PublishUserPasswordChanged(_ context.Context, msg UserPasswordChangedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, msg)
	return f.err
}

type fakeMail struct {
	mu   sync.Mutex
	err  error
	sent []OTPMail
}

func (f *fakeMail) SendOTP(_ context.Context, msg OTPMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMail) last(t *testing.T) OTPMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "no otp mail sent")
	return f.sent[len(f.sent)-1]
}

type seqID struct {
	mu   sync.Mutex
	next int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

type fixedUUID string

func (f fixedUUID) Generate() string { return string(f) }

type harness struct {
	uc         *Usecase
	db         *fakeDB
	mq         *fakeMessaging
	mail       *fakeMail
	store      *kvstore.Memory
	clk        *clock.ManualClocker
	bcrypt     hash.Hash
	accessJWT  jwt.JWT
	refreshJWT jwt.JWT
}

var errBoom = errors.New("boom")

func newHarness(t *testing.T) *harness {
	t.Helper()

	clk := clock.NewManual(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	signer := func(secret, use string, ttl time.Duration) jwt.JWT {
		s, err := jwt.NewHS512(jwt.Config{
			Secret:    []byte(strings.Repeat(secret, 64)),
			Issuer:    "otpgate",
			Audiences: []string{"otpgate-web"},
			Use:       use,
			TTL:       ttl,
			Clock:     clk,
			UUID:      fixedUUID("0199f0aa-0000-7000-8000-00000000000a"),
		})
		require.NoError(t, err)
		return s
	}

	h := &harness{
		db:         &fakeDB{users: map[string]entity.User{}},
		mq:         &fakeMessaging{},
		mail:       &fakeMail{},
		store:      kvstore.NewMemory(clk),
		clk:        clk,
		bcrypt:     hash.NewBcrypt(bcrypt.MinCost),
		accessJWT:  signer("a", jwt.UseAccess, 15*time.Minute),
		refreshJWT: signer("r", jwt.UseRefresh, 7*24*time.Hour),
	}
	t.Cleanup(func() { _ = h.store.Close() })

	h.uc = New(Dependency{
		RepoDB:        h.db,
		RepoMessaging: h.mq,
		RepoMail:      h.mail,
		Store:         h.store,
		Validator:     v,
		Bcrypt:        h.bcrypt,
		UID:           &seqID{next: 100},
		Clock:         clk,
		AccessJWT:     h.accessJWT,
		RefreshJWT:    h.refreshJWT,
		Instrument:    instrument.NewNoop(),
	})

	return h
}

// seedUser stores an account with the given plaintext password.
func (h *harness) seedUser(t *testing.T, id int64, name, email, password string) {
	t.Helper()

	hashed, err := h.bcrypt.Hash(password)
	require.NoError(t, err)

	h.db.mu.Lock()
	defer h.db.mu.Unlock()
	h.db.users[email] = entity.User{ID: id, Name: name, Email: email, Password: string(hashed)}
}

func (h *harness) exists(t *testing.T, key string) bool {
	t.Helper()
	ok, err := h.store.Exists(context.Background(), key)
	require.NoError(t, err)
	return ok
}

// wrongCode returns a valid looking code that differs from code.
func wrongCode(code string) string {
	if code == "1000" {
		return "1001"
	}
	return "1000"
}
