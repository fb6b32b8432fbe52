package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/handler"
)

// The mocks below are hand-written test doubles for the servicer interfaces.
// Each method is a function field; set only the ones your test needs.

type mockDiscServicer struct {
	list       func(ctx context.Context) ([]domain.Disc, error)
	listByType func(ctx context.Context, discType string) ([]domain.Disc, error)
	search     func(ctx context.Context, term string, mode int) ([]domain.Disc, error)
	getByID    func(ctx context.Context, id int) (domain.Disc, error)
	create     func(ctx context.Context, d domain.Disc) (domain.Disc, error)
	update     func(ctx context.Context, d domain.Disc) (domain.Disc, error)
	delete     func(ctx context.Context, id int) error
}

func (m *mockDiscServicer) List(ctx context.Context) ([]domain.Disc, error) { return m.list(ctx) }
func (m *mockDiscServicer) ListByType(ctx context.Context, t string) ([]domain.Disc, error) {
	return m.listByType(ctx, t)
}
func (m *mockDiscServicer) Search(ctx context.Context, term string, mode int) ([]domain.Disc, error) {
	return m.search(ctx, term, mode)
}
func (m *mockDiscServicer) GetByID(ctx context.Context, id int) (domain.Disc, error) {
	return m.getByID(ctx, id)
}
func (m *mockDiscServicer) Create(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	return m.create(ctx, d)
}
func (m *mockDiscServicer) Update(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	return m.update(ctx, d)
}
func (m *mockDiscServicer) Delete(ctx context.Context, id int) error { return m.delete(ctx, id) }

type mockCartServicer struct {
	list               func(ctx context.Context) ([]domain.Cart, error)
	listByUsername     func(ctx context.Context, username string) ([]domain.Cart, error)
	getByID            func(ctx context.Context, id int) (domain.Cart, error)
	create             func(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	update             func(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	delete             func(ctx context.Context, id int) error
	contents           func(ctx context.Context, username string) ([]domain.Disc, error)
	cost               func(ctx context.Context, username string) (float64, error)
	count              func(ctx context.Context, username string) (int, error)
	check              func(ctx context.Context, username string) ([]domain.Disc, error)
	checkOne           func(ctx context.Context, username string, discID int) (domain.Disc, bool, error)
	purchase           func(ctx context.Context, username string) ([]domain.Disc, error)
	purchaseOne        func(ctx context.Context, username string, discID int) (domain.Disc, error)
	addDisc            func(ctx context.Context, username string, discID int) (domain.Cart, error)
	removeDisc         func(ctx context.Context, username string, discID int) (domain.Cart, error)
	updateDiscQuantity func(ctx context.Context, username string, discID, amount, mode int) (domain.Cart, error)
}

func (m *mockCartServicer) List(ctx context.Context) ([]domain.Cart, error) { return m.list(ctx) }
func (m *mockCartServicer) ListByUsername(ctx context.Context, u string) ([]domain.Cart, error) {
	return m.listByUsername(ctx, u)
}
func (m *mockCartServicer) GetByID(ctx context.Context, id int) (domain.Cart, error) {
	return m.getByID(ctx, id)
}
func (m *mockCartServicer) Create(ctx context.Context, c domain.Cart) (domain.Cart, error) {
	return m.create(ctx, c)
}
func (m *mockCartServicer) Update(ctx context.Context, c domain.Cart) (domain.Cart, error) {
	return m.update(ctx, c)
}
func (m *mockCartServicer) Delete(ctx context.Context, id int) error { return m.delete(ctx, id) }
func (m *mockCartServicer) Contents(ctx context.Context, u string) ([]domain.Disc, error) {
	return m.contents(ctx, u)
}
func (m *mockCartServicer) Cost(ctx context.Context, u string) (float64, error) { return m.cost(ctx, u) }
func (m *mockCartServicer) Count(ctx context.Context, u string) (int, error)    { return m.count(ctx, u) }
func (m *mockCartServicer) Check(ctx context.Context, u string) ([]domain.Disc, error) {
	return m.check(ctx, u)
}
func (m *mockCartServicer) CheckOne(ctx context.Context, u string, id int) (domain.Disc, bool, error) {
	return m.checkOne(ctx, u, id)
}
func (m *mockCartServicer) Purchase(ctx context.Context, u string) ([]domain.Disc, error) {
	return m.purchase(ctx, u)
}
func (m *mockCartServicer) PurchaseOne(ctx context.Context, u string, id int) (domain.Disc, error) {
	return m.purchaseOne(ctx, u, id)
}
func (m *mockCartServicer) AddDisc(ctx context.Context, u string, id int) (domain.Cart, error) {
	return m.addDisc(ctx, u, id)
}
func (m *mockCartServicer) RemoveDisc(ctx context.Context, u string, id int) (domain.Cart, error) {
	return m.removeDisc(ctx, u, id)
}
func (m *mockCartServicer) UpdateDiscQuantity(ctx context.Context, u string, id, amount, mode int) (domain.Cart, error) {
	return m.updateDiscQuantity(ctx, u, id, amount, mode)
}

type mockLessonServicer struct {
	list       func(ctx context.Context) ([]domain.Lesson, error)
	search     func(ctx context.Context, title string) ([]domain.Lesson, error)
	listByUser func(ctx context.Context, username string) ([]domain.Lesson, error)
	listOnDate func(ctx context.Context, date string) ([]domain.Lesson, error)
	getByID    func(ctx context.Context, id int) (domain.Lesson, error)
	create     func(ctx context.Context, l domain.Lesson) (domain.Lesson, error)
	update     func(ctx context.Context, l domain.Lesson) (domain.Lesson, error)
	delete     func(ctx context.Context, id int) error
}

func (m *mockLessonServicer) List(ctx context.Context) ([]domain.Lesson, error) { return m.list(ctx) }
func (m *mockLessonServicer) Search(ctx context.Context, t string) ([]domain.Lesson, error) {
	return m.search(ctx, t)
}
func (m *mockLessonServicer) ListByUser(ctx context.Context, u string) ([]domain.Lesson, error) {
	return m.listByUser(ctx, u)
}
func (m *mockLessonServicer) ListOnDate(ctx context.Context, d string) ([]domain.Lesson, error) {
	return m.listOnDate(ctx, d)
}
func (m *mockLessonServicer) GetByID(ctx context.Context, id int) (domain.Lesson, error) {
	return m.getByID(ctx, id)
}
func (m *mockLessonServicer) Create(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	return m.create(ctx, l)
}
func (m *mockLessonServicer) Update(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	return m.update(ctx, l)
}
func (m *mockLessonServicer) Delete(ctx context.Context, id int) error { return m.delete(ctx, id) }

type mockUserServicer struct {
	list             func(ctx context.Context) ([]domain.User, error)
	getByID          func(ctx context.Context, id int) (domain.User, error)
	getByUsername    func(ctx context.Context, username string) (domain.User, error)
	create           func(ctx context.Context, u domain.User) (domain.User, error)
	update           func(ctx context.Context, u domain.User) (domain.User, error)
	delete           func(ctx context.Context, id int) error
	deleteByUsername func(ctx context.Context, username string) error
	login            func(ctx context.Context, username, password string) (domain.User, error)
	logout           func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockUserServicer) List(ctx context.Context) ([]domain.User, error) { return m.list(ctx) }
func (m *mockUserServicer) GetByID(ctx context.Context, id int) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserServicer) GetByUsername(ctx context.Context, u string) (domain.User, error) {
	return m.getByUsername(ctx, u)
}
func (m *mockUserServicer) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserServicer) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserServicer) Delete(ctx context.Context, id int) error { return m.delete(ctx, id) }
func (m *mockUserServicer) DeleteByUsername(ctx context.Context, u string) error {
	return m.deleteByUsername(ctx, u)
}
func (m *mockUserServicer) Login(ctx context.Context, u, p string) (domain.User, error) {
	return m.login(ctx, u, p)
}
func (m *mockUserServicer) Logout(ctx context.Context, u string) (domain.User, error) {
	return m.logout(ctx, u)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.DiscServicer   = (*mockDiscServicer)(nil)
	_ handler.CartServicer   = (*mockCartServicer)(nil)
	_ handler.LessonServicer = (*mockLessonServicer)(nil)
	_ handler.UserServicer   = (*mockUserServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// serve sends one request through the full router built from srv, the same
// way main.go wires it in production.
func serve(srv *handler.Server, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func discServer(m *mockDiscServicer) *handler.Server {
	return handler.NewServer(m, nil, nil, nil, discardLogger())
}

func cartServer(m *mockCartServicer) *handler.Server {
	return handler.NewServer(nil, m, nil, nil, discardLogger())
}

func lessonServer(m *mockLessonServicer) *handler.Server {
	return handler.NewServer(nil, nil, m, nil, discardLogger())
}

func userServer(m *mockUserServicer) *handler.Server {
	return handler.NewServer(nil, nil, nil, m, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
